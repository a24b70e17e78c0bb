package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go"
	fbauth "firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var ErrInvalidIDToken = errors.New("invalid or revoked id token")

// IDTokenVerifier checks a Firebase ID token and returns the user id it was
// issued for.
type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies ID tokens with the Firebase Admin SDK.
type FirebaseVerifier struct {
	client    *fbauth.Client
	projectID string
}

// NewFirebaseVerifier initializes the Admin SDK from the service account JSON
// held in credsJSON.
func NewFirebaseVerifier(ctx context.Context, projectID, credsJSON string) (*FirebaseVerifier, error) {
	if credsJSON == "" || projectID == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_JSON and FIREBASE_PROJECT_ID must be set")
	}

	opt := option.WithCredentialsJSON([]byte(credsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	if token.Audience != v.projectID {
		return "", fmt.Errorf("%w: audience %q", ErrInvalidIDToken, token.Audience)
	}
	return token.UID, nil
}
