package userControllers

import (
	"errors"
	"net/http"

	"github.com/garghot/food-client/auth"
	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/middleware"
	"github.com/garghot/food-client/models"
	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginStatus(err error) int {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials), errors.Is(err, auth.ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUserDisabled):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrInvalidCredential),
		errors.Is(err, auth.ErrInvalidIDToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, auth.ErrNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// POST /auth/login
//
// A guest signing in sends its own guest token; the cart of that guest is
// merged into the account.
func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		guestID := ""
		if uid, ok := middleware.UserID(c); ok && middleware.Role(c) == models.RoleGuest && auth.IsGuestID(uid) {
			guestID = uid
		}

		res, err := svc.Login(c.Request.Context(), input.Email, input.Password, guestID)
		if err != nil {
			_ = c.Error(err)
			c.JSON(loginStatus(err), gin.H{"error": auth.Message(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"merge_status": res.MergeStatus,
			"imported":     res.Imported,
			"user_id":      res.Session.UserID,
			"email":        res.Session.Email,
			"token":        res.Session.Token,
			"expires_at":   res.Session.ExpiresAt,
		})
	}
}

// POST /auth/guest
func CreateGuestUser(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.Guest()
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   session.UserID,
			"token":      session.Token,
			"expires_at": session.ExpiresAt,
		})
	}
}

// POST /auth/logout
//
// Session tokens are stateless, so logging out only drops the cart of a guest,
// which nobody could reach again.
func Logout(storage *cart.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if middleware.Role(c) == models.RoleGuest {
			if err := storage.Clear(c.Request.Context(), uid); err != nil {
				_ = c.Error(err)
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// GET /user/
func GetUser(c *gin.Context) {
	uid, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": uid,
		"email":   middleware.Email(c),
		"role":    middleware.Role(c),
	})
}
