package adminController

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/garghot/food-client/controllers"
	"github.com/garghot/food-client/models"
	"github.com/gin-gonic/gin"
)

type VenteReader interface {
	Get(ctx context.Context, id int) (*models.Vente, error)
	List(ctx context.Context) ([]models.Vente, error)
	ByPlat(ctx context.Context, platID int) ([]models.Vente, error)
	ByDate(ctx context.Context, date string) ([]models.Vente, error)
}

// PlatSales sums the sales of one plat.
type PlatSales struct {
	PlatID   int     `json:"plat_id"`
	Quantite int     `json:"quantite"`
	Montant  float64 `json:"montant"`
}

// SummarizeVentes groups sales by plat, best sellers first.
func SummarizeVentes(ventes []models.Vente) []PlatSales {
	byPlat := make(map[int]*PlatSales)
	for _, v := range ventes {
		s, ok := byPlat[v.IDPlat]
		if !ok {
			s = &PlatSales{PlatID: v.IDPlat}
			byPlat[v.IDPlat] = s
		}
		s.Quantite += v.Quantite
		s.Montant += v.Montant
	}

	out := make([]PlatSales, 0, len(byPlat))
	for _, s := range byPlat {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantite != out[j].Quantite {
			return out[i].Quantite > out[j].Quantite
		}
		return out[i].PlatID < out[j].PlatID
	})
	return out
}

// GET /admin/ventes?plat_id=&date=
func GetVentes(ventes VenteReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var (
			list []models.Vente
			err  error
		)
		switch {
		case c.Query("plat_id") != "":
			platID, convErr := strconv.Atoi(c.Query("plat_id"))
			if convErr != nil || platID <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plat_id"})
				return
			}
			list, err = ventes.ByPlat(ctx, platID)
		case c.Query("date") != "":
			list, err = ventes.ByDate(ctx, c.Query("date"))
		default:
			list, err = ventes.List(ctx)
		}
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch ventes")
			return
		}

		var montant float64
		quantite := 0
		for _, v := range list {
			montant += v.Montant
			quantite += v.Quantite
		}
		c.JSON(http.StatusOK, gin.H{
			"ventes":         list,
			"total_montant":  montant,
			"total_quantite": quantite,
			"par_plat":       SummarizeVentes(list),
		})
	}
}

// GET /admin/ventes/:id
func GetVente(ventes VenteReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}
		v, err := ventes.Get(c.Request.Context(), id)
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch vente")
			return
		}
		c.JSON(http.StatusOK, v)
	}
}
