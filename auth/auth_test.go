package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/models"
	"github.com/garghot/food-client/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		assert.Equal(t, "/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.ReturnSecureToken)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case req.Password == "secret":
			_ = json.NewEncoder(w).Encode(signInResponse{
				LocalID:      "uid-1",
				Email:        req.Email,
				IDToken:      "id-token",
				RefreshToken: "refresh",
				ExpiresIn:    "3600",
			})
		case strings.HasPrefix(req.Password, "code:"):
			w.WriteHeader(http.StatusBadRequest)
			var body identityErrorBody
			body.Error.Code = 400
			body.Error.Message = strings.TrimPrefix(req.Password, "code:")
			_ = json.NewEncoder(w).Encode(body)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIdentityClient_SignIn(t *testing.T) {
	calls := 0
	srv := identityServer(t, &calls)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c := NewIdentityClient("test-key", 5*time.Second).WithBaseURL(srv.URL)
	c.now = func() time.Time { return now }

	res, err := c.SignIn(context.Background(), " a@b.mg ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", res.UserID)
	assert.Equal(t, "a@b.mg", res.Email)
	assert.Equal(t, "id-token", res.IDToken)
	assert.Equal(t, now.Add(time.Hour), res.ExpiresAt)
}

func TestIdentityClient_ErrorCodes(t *testing.T) {
	calls := 0
	srv := identityServer(t, &calls)
	c := NewIdentityClient("test-key", 5*time.Second).WithBaseURL(srv.URL)

	tests := []struct {
		code string
		want error
	}{
		{"INVALID_EMAIL", ErrInvalidEmail},
		{"USER_DISABLED", ErrUserDisabled},
		{"EMAIL_NOT_FOUND", ErrUserNotFound},
		{"INVALID_PASSWORD", ErrWrongPassword},
		{"INVALID_LOGIN_CREDENTIALS", ErrInvalidCredential},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled", ErrTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := c.SignIn(context.Background(), "a@b.mg", "code:"+tt.code)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err := c.SignIn(context.Background(), "a@b.mg", "code:SOMETHING_ELSE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOMETHING_ELSE")

	_, err = c.SignIn(context.Background(), "a@b.mg", "other")
	require.Error(t, err)
}

func TestIdentityClient_MissingCredentialsSkipsNetwork(t *testing.T) {
	calls := 0
	srv := identityServer(t, &calls)
	c := NewIdentityClient("test-key", time.Second).WithBaseURL(srv.URL)

	_, err := c.SignIn(context.Background(), "", "secret")
	require.ErrorIs(t, err, ErrMissingCredentials)
	_, err = c.SignIn(context.Background(), "a@b.mg", "")
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, calls)

	_, err = NewIdentityClient("", time.Second).SignIn(context.Background(), "a@b.mg", "x")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Mot de passe incorrect", Message(ErrWrongPassword))
	assert.Equal(t, "Veuillez remplir tous les champs", Message(ErrMissingCredentials))
	assert.Equal(t, "Une erreur est survenue lors de la connexion", Message(errors.New("x")))
}

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("s3cret")
	signed, exp, err := tokens.Issue("uid-1", "a@b.mg", models.RoleUser)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(SessionTTL), exp, time.Minute)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserID)
	assert.Equal(t, "a@b.mg", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens("s3cret")
	signed, _, err := tokens.Issue("uid-1", "", models.RoleUser)
	require.NoError(t, err)

	_, err = NewTokens("other").Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokens("s3cret")
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	old, _, err := expired.Issue("uid-1", "", models.RoleUser)
	require.NoError(t, err)
	_, err = tokens.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "uid-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = NewTokens("").Issue("uid-1", "", models.RoleUser)
	assert.Error(t, err)
}

func TestGuestSession(t *testing.T) {
	tokens := NewTokens("s3cret")
	session, err := tokens.GuestSession()
	require.NoError(t, err)

	assert.True(t, IsGuestID(session.UserID))
	assert.Len(t, session.UserID, len(GuestPrefix)+32)
	assert.True(t, session.IsGuest())

	claims, err := tokens.Parse(session.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, claims.Role)
	a, err := NewGuestID()
	require.NoError(t, err)
	b, err := NewGuestID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("entropy unavailable") }

func TestGuestSession_RandomFailure(t *testing.T) {
	saved := randReader
	randReader = brokenReader{}
	t.Cleanup(func() { randReader = saved })

	_, err := NewGuestID()
	require.Error(t, err)

	_, err = NewTokens("s3cret").GuestSession()
	require.Error(t, err)
}

type fakeIdentity struct {
	res *SignInResult
	err error
}

func (f fakeIdentity) SignIn(context.Context, string, string) (*SignInResult, error) {
	return f.res, f.err
}

type fakeVerifier struct{ uid string }

func (f fakeVerifier) Verify(context.Context, string) (string, error) { return f.uid, nil }

type fakeLinker struct {
	status   cart.MergeStatus
	mergeErr error
	synced   []string
}

func (f *fakeLinker) MergeGuest(context.Context, string, string) (cart.MergeStatus, error) {
	return f.status, f.mergeErr
}

func (f *fakeLinker) Sync(_ context.Context, userID string) (int, error) {
	f.synced = append(f.synced, userID)
	return 2, nil
}

func TestService_Login(t *testing.T) {
	identity := fakeIdentity{res: &SignInResult{UserID: "uid-1", Email: "a@b.mg", IDToken: "idt"}}
	linker := &fakeLinker{status: cart.MergeSuccess}
	svc := NewService(identity, fakeVerifier{uid: "uid-1"}, NewTokens("s3cret"), linker, nil)

	res, err := svc.Login(context.Background(), "a@b.mg", "pw", "guest_abc")
	require.NoError(t, err)
	assert.Equal(t, cart.MergeSuccess, res.MergeStatus)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, "uid-1", res.Session.UserID)
	assert.Equal(t, "idt", res.Session.IDToken)
	assert.Equal(t, []string{"uid-1"}, linker.synced)

	claims, err := svc.Tokens().Parse(res.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserID)
}

func TestService_LoginMergeFailureIsNotFatal(t *testing.T) {
	identity := fakeIdentity{res: &SignInResult{UserID: "uid-1"}}
	linker := &fakeLinker{mergeErr: errors.New("disk full")}
	svc := NewService(identity, nil, NewTokens("s3cret"), linker, nil)

	res, err := svc.Login(context.Background(), "a@b.mg", "pw", "guest_abc")
	require.NoError(t, err)
	assert.Equal(t, MergeFailed, res.MergeStatus)
}

func TestService_LoginErrors(t *testing.T) {
	svc := NewService(fakeIdentity{err: ErrWrongPassword}, nil, NewTokens("s3cret"), nil, nil)
	_, err := svc.Login(context.Background(), "a@b.mg", "pw", "")
	require.ErrorIs(t, err, ErrWrongPassword)

	identity := fakeIdentity{res: &SignInResult{UserID: "uid-1"}}
	svc = NewService(identity, fakeVerifier{uid: "someone-else"}, NewTokens("s3cret"), nil, nil)
	_, err = svc.Login(context.Background(), "a@b.mg", "pw", "")
	require.ErrorIs(t, err, ErrInvalidIDToken)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(store.NewMemory())

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	session := models.Session{UserID: "uid-1", Role: models.RoleUser, Token: "t", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.Save(ctx, session))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", got.UserID)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Clear(ctx))
	s.now = time.Now
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}
