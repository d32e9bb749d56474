package middleware

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"google.golang.org/api/option"
)

// UIDKey is the echo context key holding the resolved principal. An empty
// value is the anonymous principal.
const UIDKey = "uid"

// TokenVerifier turns a bearer token into a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type FirebaseVerifier struct {
	authClient *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &FirebaseVerifier{authClient: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	t, err := v.authClient.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return t.UID, nil
}

// DevVerifier accepts the token text as the uid. Local development only.
type DevVerifier struct{}

func (DevVerifier) Verify(_ context.Context, token string) (string, error) {
	return strings.TrimSpace(token), nil
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware accepts a nil verifier, in which case every caller is
// anonymous.
func NewAuthMiddleware(v TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: v}
}

// Identify resolves the caller without rejecting anonymous requests; the
// services decide what needs authentication. A token that is present but
// fails verification is answered with 401.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(UIDKey, "")
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || m.verifier == nil {
			return next(c)
		}
		if !strings.HasPrefix(authz, "Bearer ") {
			return unauthorized(c)
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		uid, err := m.verifier.Verify(c.Request().Context(), tokenStr)
		if err != nil || uid == "" {
			return unauthorized(c)
		}
		c.Set(UIDKey, uid)
		return next(c)
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"success": false,
		"data":    nil,
		"error":   "Invalid token",
	})
}

// UID returns the principal resolved by Identify.
func UID(c echo.Context) string {
	uid, _ := c.Get(UIDKey).(string)
	return uid
}
