package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/arnavkapoor/storefront-platform/internal/errors"
	"github.com/arnavkapoor/storefront-platform/internal/models"
	repository "github.com/arnavkapoor/storefront-platform/internal/repositories"
	"github.com/arnavkapoor/storefront-platform/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type authContextKey string

const UserContextKey = authContextKey("authUser")

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

type AuthMiddleware struct {
	jwtKey   []byte
	userRepo repository.UserRepository
}

func NewAuthMiddleware(jwtKey []byte, userRepo repository.UserRepository) *AuthMiddleware {

	return &AuthMiddleware{jwtKey: jwtKey, userRepo: userRepo}

}

// tokenFromRequest looks for the session cookie first, then falls back to a
// Bearer Authorization header for non-browser callers.
func tokenFromRequest(r *http.Request) string {

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}

	return tokenParts[1]
}

// Verify resolves the caller behind the request's session token. The token
// only proves identity; the role is re-read from the store on every call so a
// role change takes effect before the token expires.
func (m *AuthMiddleware) Verify(r *http.Request) (*models.AuthUser, error) {

	logger := LoggerFromContext(r.Context())

	tokenString := tokenFromRequest(r)
	if tokenString == "" {
		return nil, appErrors.UnauthorizedError("Authentication required")
	}

	// Stores the decoded information
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// check the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {

			logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
			return nil, errors.New("unexpected signing method")

		}
		return m.jwtKey, nil
	})

	if err != nil {
		logger.Warn("Session token parsing failed", slog.String("error", err.Error()))
		return nil, appErrors.UnauthorizedError("Invalid or expired session")
	}

	if !token.Valid {
		logger.Warn("Invalid session token")
		return nil, appErrors.UnauthorizedError("Invalid session")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		logger.Warn("Expired session token", slog.String("userId", claims.UserID.String()))
		return nil, appErrors.UnauthorizedError("Session expired")
	}

	user, err := m.userRepo.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Session user no longer exists", slog.String("userId", claims.UserID.String()))
			return nil, appErrors.UnauthorizedError("Invalid session")
		}

		logger.Error("User lookup failed during session verification", slog.Any("error", err))
		return nil, appErrors.UnavailableError("Authentication service unavailable").WithError(err)
	}

	return &models.AuthUser{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authUser, err := m.Verify(r)
		if err != nil {
			response.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, authUser)

		requestScopedLogger := logger.With(slog.String("userId", authUser.ID.String()))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin stacks on Authenticate: a valid session with a non-admin role
// is rejected with 403, distinctly from the missing-session 401.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.HandlerFunc {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		authUser, ok := UserFromContext(r.Context())
		if !ok || !authUser.IsAdmin() {
			LoggerFromContext(r.Context()).Warn("Admin access denied")
			response.Error(w, appErrors.ForbiddenError("Admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	}))
}

func UserFromContext(ctx context.Context) (*models.AuthUser, bool) {
	authUser, ok := ctx.Value(UserContextKey).(*models.AuthUser)

	return authUser, ok
}
