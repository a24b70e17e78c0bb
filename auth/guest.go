package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/garghot/food-client/models"
)

const GuestPrefix = "guest_"

var randReader io.Reader = rand.Reader

// NewGuestID returns a random "guest_<hex>" identifier.
func NewGuestID() (string, error) {
	s, err := generateRandomString(16)
	if err != nil {
		return "", fmt.Errorf("generate guest id: %w", err)
	}
	return GuestPrefix + s, nil
}

func IsGuestID(id string) bool {
	return strings.HasPrefix(id, GuestPrefix)
}

func generateRandomString(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := io.ReadFull(randReader, bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// GuestSession issues a session for a new guest.
func (t *Tokens) GuestSession() (models.Session, error) {
	id, err := NewGuestID()
	if err != nil {
		return models.Session{}, err
	}
	return t.Session(id, "", models.RoleGuest)
}
