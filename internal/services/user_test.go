package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	appErrors "github.com/arnavkapoor/storefront-platform/internal/errors"
	"github.com/arnavkapoor/storefront-platform/internal/models"
	"github.com/arnavkapoor/storefront-platform/internal/repositories/mocks"
	service "github.com/arnavkapoor/storefront-platform/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userTestJWTKey = []byte("unit-test-key")

func setupUserService() (*mocks.UserRepository, *mocks.RateLimitRepository, service.UserService) {
	userRepo := new(mocks.UserRepository)
	rateLimit := new(mocks.RateLimitRepository)
	svc := service.NewUserService(userRepo, rateLimit, userTestJWTKey, time.Hour)
	return userRepo, rateLimit, svc
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestUserRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Default Role Assigned", func(t *testing.T) {
		userRepo, _, svc := setupUserService()

		userRepo.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, sql.ErrNoRows).Once()
		userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "new@example.com" && u.Role == models.RoleUser && u.Password != "hunter22"
		})).Return(nil).Once()

		user, err := svc.Register(ctx, &models.RegisterRequest{Email: "new@example.com", Password: "hunter22"})

		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		userRepo, _, svc := setupUserService()

		userRepo.On("GetUserByEmail", mock.Anything, "taken@example.com").
			Return(&models.User{ID: uuid.New(), Email: "taken@example.com"}, nil).Once()

		_, err := svc.Register(ctx, &models.RegisterRequest{Email: "taken@example.com", Password: "hunter22"})

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDuplicateEntry, appErr.Code)
		userRepo.AssertNotCalled(t, "CreateUser")
	})
}

func TestUserLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Token Without Role Claim", func(t *testing.T) {
		userRepo, rateLimit, svc := setupUserService()

		userID := uuid.New()
		rateLimit.On("CheckLoginRateLimit", mock.Anything, "admin@example.com").Return(true, 4, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "admin@example.com").Return(&models.User{
			ID:       userID,
			Email:    "admin@example.com",
			Password: hashPassword(t, "hunter22"),
			Role:     models.RoleAdmin,
		}, nil).Once()

		resp, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@example.com", Password: "hunter22"})

		require.NoError(t, err)
		assert.True(t, resp.Success)
		require.NotEmpty(t, resp.Token)
		assert.Positive(t, resp.ExpiresIn)

		// The token identifies the user but never carries the role; the role
		// is read back from the store on every request.
		claims := &models.Claims{}
		_, err = jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (any, error) {
			return userTestJWTKey, nil
		})
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)

		token, _, err := jwt.NewParser().ParseUnverified(resp.Token, jwt.MapClaims{})
		require.NoError(t, err)
		assert.NotContains(t, token.Claims.(jwt.MapClaims), "role")
	})

	t.Run("Failure - Wrong Password", func(t *testing.T) {
		userRepo, rateLimit, svc := setupUserService()

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "user@example.com").Return(true, 3, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "user@example.com").Return(&models.User{
			ID:       uuid.New(),
			Email:    "user@example.com",
			Password: hashPassword(t, "correct"),
		}, nil).Once()

		resp, err := svc.Login(ctx, &models.LoginRequest{Email: "user@example.com", Password: "wrong"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Empty(t, resp.Token)
		assert.Equal(t, 3, resp.RemainingTries)
	})

	t.Run("Failure - Unknown Email Indistinguishable", func(t *testing.T) {
		userRepo, rateLimit, svc := setupUserService()

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "ghost@example.com").Return(true, 5, 0, nil).Once()
		userRepo.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows).Once()

		resp, err := svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Invalid email or password", resp.Message)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		userRepo, rateLimit, svc := setupUserService()

		rateLimit.On("CheckLoginRateLimit", mock.Anything, "user@example.com").Return(false, 0, 120, nil).Once()

		resp, err := svc.Login(ctx, &models.LoginRequest{Email: "user@example.com", Password: "hunter22"})

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, 120, resp.RetryAfter)
		userRepo.AssertNotCalled(t, "GetUserByEmail")
	})
}

func TestUserGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo, _, svc := setupUserService()

		userID := uuid.New()
		userRepo.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Email: "user@example.com"}, nil).Once()

		user, err := svc.GetUserByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		userRepo, _, svc := setupUserService()

		userID := uuid.New()
		userRepo.On("GetUserByID", mock.Anything, userID).Return(nil, sql.ErrNoRows).Once()

		_, err := svc.GetUserByID(ctx, userID)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})
}
