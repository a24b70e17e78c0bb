package models

// Plat is a dish of the menu.
type Plat struct {
	ID          int              `json:"id"`
	Nom         string           `json:"nom"`
	Slug        string           `json:"slug,omitempty"`
	Description string           `json:"description,omitempty"`
	Duration    int              `json:"duration,omitempty"` // minutes
	Categorie   *PlatCategorie   `json:"categorie,omitempty"`
	Ingredients []PlatIngredient `json:"ingredients"`
	Prix        Price            `json:"prix"`
	Image       string           `json:"image"`
}

type PlatCategorie struct {
	ID   int    `json:"id"`
	Nom  string `json:"nom"`
	Slug string `json:"slug,omitempty"`
}

type PlatIngredient struct {
	ID  int    `json:"id"`
	Nom string `json:"nom"`
}

// CategorieID returns the dish category id, or 0 when the dish has none.
func (p Plat) CategorieID() int {
	if p.Categorie == nil {
		return 0
	}
	return p.Categorie.ID
}

type Categorie struct {
	ID   int    `json:"id"`
	Nom  string `json:"nom"`
	Slug string `json:"slug,omitempty"`
}

// AllCategoriesID is the pseudo category that matches every dish.
const AllCategoriesID = -1

type Ingredient struct {
	ID       int     `json:"id"`
	Nom      string  `json:"nom"`
	Quantite float64 `json:"quantite"`
	Unite    string  `json:"unite"`
	PlatID   int     `json:"platId,omitempty"`
}

type Prix struct {
	ID      int     `json:"id"`
	Montant float64 `json:"montant"`
	Date    string  `json:"date"`
	PlatID  int     `json:"platId,omitempty"`
}

type Vente struct {
	ID       int     `json:"id"`
	Date     string  `json:"date"`
	Montant  float64 `json:"montant"`
	IDPlat   int     `json:"id_plat"`
	Quantite int     `json:"quantite"`
}
