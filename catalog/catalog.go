package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/garghot/food-client/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	AllCategoriesLabel = "Tous"

	defaultDescription = "Aucune description disponible"
	unknownCategory    = "Catégorie inconnue"
	defaultDuration    = "30 min"
)

// Normalize lowercases s and strips its diacritics so that "Crème" and
// "creme" compare equal.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Filter keeps the dishes whose name contains query and that belong to the
// category. A categoryID of AllCategoriesID, or zero, matches every dish.
func Filter(plats []models.Plat, query string, categoryID int) []models.Plat {
	q := Normalize(strings.TrimSpace(query))
	out := make([]models.Plat, 0, len(plats))
	for _, p := range plats {
		if q != "" && !strings.Contains(Normalize(p.Nom), q) {
			continue
		}
		if categoryID > 0 && p.CategorieID() != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CategoriesWithAll prepends the "Tous" pseudo category.
func CategoriesWithAll(list []models.Categorie) []models.Categorie {
	out := make([]models.Categorie, 0, len(list)+1)
	out = append(out, models.Categorie{ID: models.AllCategoriesID, Nom: AllCategoriesLabel})
	return append(out, list...)
}

type IngredientLine struct {
	ID       int    `json:"id"`
	Nom      string `json:"nom"`
	Quantite int    `json:"quantite"`
}

// Detail is a dish as the details screen shows it.
type Detail struct {
	ID          int              `json:"id"`
	Nom         string           `json:"nom"`
	Prix        float64          `json:"prix"`
	PrixLabel   string           `json:"prix_label"`
	Image       string           `json:"image"`
	Description string           `json:"description"`
	Categorie   string           `json:"categorie"`
	Duration    string           `json:"duration"`
	Ingredients []IngredientLine `json:"ingredients"`
}

func Details(p models.Plat) Detail {
	d := Detail{
		ID:          p.ID,
		Nom:         p.Nom,
		Prix:        p.Prix.Float64(),
		PrixLabel:   PriceLabel(p.Prix.Float64()),
		Image:       p.Image,
		Description: p.Description,
		Categorie:   unknownCategory,
		Duration:    defaultDuration,
		Ingredients: make([]IngredientLine, 0, len(p.Ingredients)),
	}
	if strings.TrimSpace(d.Description) == "" {
		d.Description = defaultDescription
	}
	if p.Categorie != nil && p.Categorie.Nom != "" {
		d.Categorie = p.Categorie.Nom
	}
	if p.Duration > 0 {
		d.Duration = fmt.Sprintf("%d min", p.Duration)
	}
	for _, ing := range p.Ingredients {
		// the API does not send per-dish quantities
		d.Ingredients = append(d.Ingredients, IngredientLine{ID: ing.ID, Nom: ing.Nom, Quantite: 1})
	}
	return d
}

func FormatPrice(v float64) string {
	return fmt.Sprintf("%.2f €", v)
}

// PriceLabel is FormatPrice for a dish, where 0 means the price is unknown.
func PriceLabel(v float64) string {
	if v <= 0 {
		return "Prix non disponible"
	}
	return FormatPrice(v)
}
