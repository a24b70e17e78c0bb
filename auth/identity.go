package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultIdentityURL = "https://identitytoolkit.googleapis.com/v1"

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUserDisabled       = errors.New("account disabled")
	ErrUserNotFound       = errors.New("no account for this email")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidCredential  = errors.New("invalid email or password")
	ErrTooManyRequests    = errors.New("too many sign-in attempts")
	ErrNotConfigured      = errors.New("firebase api key is not configured")
)

// identityErrors maps Identity Toolkit error messages to sentinels. Messages
// may carry a suffix after " : ", only the code is matched.
var identityErrors = map[string]error{
	"INVALID_EMAIL":               ErrInvalidEmail,
	"USER_DISABLED":               ErrUserDisabled,
	"EMAIL_NOT_FOUND":             ErrUserNotFound,
	"INVALID_PASSWORD":            ErrWrongPassword,
	"INVALID_LOGIN_CREDENTIALS":   ErrInvalidCredential,
	"TOO_MANY_ATTEMPTS_TRY_LATER": ErrTooManyRequests,
	"MISSING_PASSWORD":            ErrMissingCredentials,
	"MISSING_EMAIL":               ErrMissingCredentials,
}

// Message returns the text shown to the user for a sign-in error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "Veuillez remplir tous les champs"
	case errors.Is(err, ErrInvalidEmail):
		return "Adresse email invalide"
	case errors.Is(err, ErrUserDisabled):
		return "Ce compte a été désactivé"
	case errors.Is(err, ErrUserNotFound):
		return "Aucun compte trouvé avec cette adresse email"
	case errors.Is(err, ErrWrongPassword):
		return "Mot de passe incorrect"
	case errors.Is(err, ErrInvalidCredential):
		return "Email ou mot de passe incorrect"
	case errors.Is(err, ErrTooManyRequests):
		return "Trop de tentatives de connexion. Veuillez réessayer plus tard."
	default:
		return "Une erreur est survenue lors de la connexion"
	}
}

// SignInResult is the identity returned by a password sign-in.
type SignInResult struct {
	UserID       string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// IdentityClient signs users in with email and password against the
// Firebase Identity Toolkit REST API.
type IdentityClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	now     func() time.Time
}

func NewIdentityClient(apiKey string, timeout time.Duration) *IdentityClient {
	return &IdentityClient{
		apiKey:  apiKey,
		baseURL: DefaultIdentityURL,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// WithBaseURL points the client at another endpoint, the emulator for
// example.
func (c *IdentityClient) WithBaseURL(u string) *IdentityClient {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("encode sign-in request: %w", err)
	}

	endpoint := c.baseURL + "/accounts:signInWithPassword?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var eb identityErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err != nil {
			return nil, fmt.Errorf("sign-in failed with status %d", resp.StatusCode)
		}
		return nil, identityError(eb.Error.Message)
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}

	result := &SignInResult{
		UserID:       out.LocalID,
		Email:        out.Email,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
	}
	if secs, err := strconv.Atoi(out.ExpiresIn); err == nil {
		result.ExpiresAt = c.now().Add(time.Duration(secs) * time.Second)
	}
	return result, nil
}

func identityError(message string) error {
	code, _, _ := strings.Cut(message, " ")
	if sentinel, ok := identityErrors[code]; ok {
		return sentinel
	}
	return fmt.Errorf("sign-in failed: %s", message)
}
