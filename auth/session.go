package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/logger"
	"github.com/garghot/food-client/models"
	"github.com/garghot/food-client/store"
)

// SessionKey is where the CLI keeps the current session.
const SessionKey = "session"

var ErrNoSession = errors.New("not signed in")

// MergeFailed is reported when the guest cart could not be moved at login.
const MergeFailed cart.MergeStatus = "merge-failed"

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
}

// CartLinker moves a guest cart to the signed-in user and pulls the user's
// open order into the local cart.
type CartLinker interface {
	MergeGuest(ctx context.Context, guestID, userID string) (cart.MergeStatus, error)
	Sync(ctx context.Context, userID string) (int, error)
}

type LoginResult struct {
	Session     models.Session   `json:"session"`
	MergeStatus cart.MergeStatus `json:"merge_status"`
	Imported    int              `json:"imported"`
}

// Service runs the sign-in flows shared by the CLI and the local server.
type Service struct {
	identity Authenticator
	verifier IDTokenVerifier
	tokens   *Tokens
	carts    CartLinker
	log      *logger.Logger
}

// NewService wires the sign-in flow. verifier and carts may be nil.
func NewService(identity Authenticator, verifier IDTokenVerifier, tokens *Tokens, carts CartLinker, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{identity: identity, verifier: verifier, tokens: tokens, carts: carts, log: log}
}

func (s *Service) Tokens() *Tokens { return s.tokens }

// Login signs the user in, then merges the guest cart identified by guestID
// (if any) and imports the open order. Cart errors are logged, not returned.
func (s *Service) Login(ctx context.Context, email, password, guestID string) (*LoginResult, error) {
	res, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if s.verifier != nil {
		uid, err := s.verifier.Verify(ctx, res.IDToken)
		if err != nil {
			return nil, err
		}
		if uid != res.UserID {
			return nil, fmt.Errorf("%w: uid mismatch", ErrInvalidIDToken)
		}
	}

	session, err := s.tokens.Session(res.UserID, res.Email, models.RoleUser)
	if err != nil {
		return nil, err
	}
	session.IDToken = res.IDToken
	session.RefreshToken = res.RefreshToken

	out := &LoginResult{Session: session, MergeStatus: cart.MergeNoGuestCart}
	if s.carts == nil {
		return out, nil
	}

	if guestID != "" {
		status, err := s.carts.MergeGuest(ctx, guestID, res.UserID)
		if err != nil {
			s.log.Error("guest_merge_failed", res.UserID, "guest cart not merged", err, slog.String("guest_id", guestID))
			status = MergeFailed
		}
		out.MergeStatus = status
	}

	n, err := s.carts.Sync(ctx, res.UserID)
	if err != nil {
		s.log.Warn("cart_sync_failed", res.UserID, err.Error())
	}
	out.Imported = n

	s.log.Info("login", res.UserID, "user signed in",
		slog.String("merge_status", string(out.MergeStatus)),
		slog.Int("imported", n))
	return out, nil
}

func (s *Service) Guest() (models.Session, error) {
	return s.tokens.GuestSession()
}

// SessionStore persists the CLI session in the local store.
type SessionStore struct {
	kv  store.KV
	now func() time.Time
}

func NewSessionStore(kv store.KV) *SessionStore {
	return &SessionStore{kv: kv, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, session models.Session) error {
	if err := store.SetJSON(ctx, s.kv, SessionKey, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the saved session. An expired session counts as none.
func (s *SessionStore) Load(ctx context.Context) (models.Session, error) {
	var session models.Session
	if err := store.GetJSON(ctx, s.kv, SessionKey, &session); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Session{}, ErrNoSession
		}
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}
	if session.UserID == "" || session.Expired(s.now()) {
		return models.Session{}, ErrNoSession
	}
	return session, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
