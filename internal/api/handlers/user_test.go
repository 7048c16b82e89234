package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arnavkapoor/storefront-platform/internal/api/handlers"
	"github.com/arnavkapoor/storefront-platform/internal/api/middleware"
	appErrors "github.com/arnavkapoor/storefront-platform/internal/errors"
	"github.com/arnavkapoor/storefront-platform/internal/models"
	repoMocks "github.com/arnavkapoor/storefront-platform/internal/repositories/mocks"
	"github.com/arnavkapoor/storefront-platform/internal/services/mocks"
	"github.com/arnavkapoor/storefront-platform/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testJWTKey = []byte("test-signing-key")

func setupUserTest() (*mocks.UserService, *repoMocks.UserRepository, *handlers.UserHandler) {
	mockUserService := new(mocks.UserService)
	mockUserRepo := new(repoMocks.UserRepository)
	authMiddleware := middleware.NewAuthMiddleware(testJWTKey, mockUserRepo)
	userHandler := handlers.NewUserHandler(mockUserService, authMiddleware, time.Hour, false)
	return mockUserService, mockUserRepo, userHandler
}

func signSessionToken(t *testing.T, userID uuid.UUID, email string, expiry time.Duration) string {
	t.Helper()

	claims := &models.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testJWTKey)
	require.NoError(t, err)
	return token
}

func TestRegister(t *testing.T) {
	t.Run("Success - New User", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		body, _ := json.Marshal(models.RegisterRequest{Email: "new@example.com", Password: "hunter22"})
		req := httptest.NewRequest("POST", "/api/users/register", bytes.NewBuffer(body))
		recorder := httptest.NewRecorder()

		mockUser := &models.User{ID: uuid.New(), Email: "new@example.com", Role: models.RoleUser}

		mockUserService.On("Register", mock.Anything, mock.MatchedBy(func(r *models.RegisterRequest) bool {
			return r.Email == "new@example.com"
		})).Return(mockUser, nil).Once()

		userHandler.Register()(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Duplicate Email", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		body, _ := json.Marshal(models.RegisterRequest{Email: "taken@example.com", Password: "hunter22"})
		req := httptest.NewRequest("POST", "/api/users/register", bytes.NewBuffer(body))
		recorder := httptest.NewRecorder()

		mockUserService.On("Register", mock.Anything, mock.Anything).
			Return(nil, appErrors.DuplicateEntryError("Email already registered")).Once()

		userHandler.Register()(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Short Password", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		body, _ := json.Marshal(models.RegisterRequest{Email: "new@example.com", Password: "abc"})
		req := httptest.NewRequest("POST", "/api/users/register", bytes.NewBuffer(body))
		recorder := httptest.NewRecorder()

		userHandler.Register()(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockUserService.AssertNotCalled(t, "Register")
	})
}

func TestLogin(t *testing.T) {
	t.Run("Success - Session Cookie Set", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		body, _ := json.Marshal(models.LoginRequest{Email: "user@example.com", Password: "hunter22"})
		req := httptest.NewRequest("POST", "/api/users/login", bytes.NewBuffer(body))
		recorder := httptest.NewRecorder()

		mockUserService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: true, Token: "signed-token"}, nil).Once()

		userHandler.Login()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, int(time.Hour.Seconds()), cookies[0].MaxAge)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Bad Credentials", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		body, _ := json.Marshal(models.LoginRequest{Email: "user@example.com", Password: "wrong"})
		req := httptest.NewRequest("POST", "/api/users/login", bytes.NewBuffer(body))
		recorder := httptest.NewRecorder()

		mockUserService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, Message: "Invalid credentials"}, nil).Once()

		userHandler.Login()(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Empty(t, recorder.Result().Cookies())
		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		body, _ := json.Marshal(models.LoginRequest{Email: "user@example.com", Password: "wrong"})
		req := httptest.NewRequest("POST", "/api/users/login", bytes.NewBuffer(body))
		recorder := httptest.NewRecorder()

		mockUserService.On("Login", mock.Anything, mock.Anything).
			Return(&models.LoginResponse{Success: false, RetryAfter: 60}, nil).Once()

		userHandler.Login()(recorder, req)

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
		mockUserService.AssertExpectations(t)
	})
}

func TestLogout(t *testing.T) {
	t.Run("Success - Cookie Cleared", func(t *testing.T) {
		_, _, userHandler := setupUserTest()

		req := httptest.NewRequest("POST", "/api/users/logout", nil)
		recorder := httptest.NewRecorder()

		userHandler.Logout()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, middleware.SessionCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}

func TestAuthStatus(t *testing.T) {
	t.Run("Authenticated Admin", func(t *testing.T) {
		_, mockUserRepo, userHandler := setupUserTest()

		userID := uuid.New()
		token := signSessionToken(t, userID, "admin@example.com", time.Hour)

		req := httptest.NewRequest("GET", "/api/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		recorder := httptest.NewRecorder()

		mockUserRepo.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Email: "admin@example.com", Role: models.RoleAdmin}, nil).Once()

		userHandler.AuthStatus()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var status models.AuthStatusResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.True(t, status.IsAuthenticated)
		assert.True(t, status.IsAdmin)

		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Role Downgrade Reflected Immediately", func(t *testing.T) {
		_, mockUserRepo, userHandler := setupUserTest()

		userID := uuid.New()
		token := signSessionToken(t, userID, "demoted@example.com", time.Hour)

		req := httptest.NewRequest("GET", "/api/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		recorder := httptest.NewRecorder()

		// The store says plain user: whatever the token used to represent is irrelevant.
		mockUserRepo.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Email: "demoted@example.com", Role: models.RoleUser}, nil).Once()

		userHandler.AuthStatus()(recorder, req)

		var status models.AuthStatusResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.True(t, status.IsAuthenticated)
		assert.False(t, status.IsAdmin)
	})

	t.Run("No Session", func(t *testing.T) {
		_, _, userHandler := setupUserTest()

		req := httptest.NewRequest("GET", "/api/auth/status", nil)
		recorder := httptest.NewRecorder()

		userHandler.AuthStatus()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var status models.AuthStatusResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.False(t, status.IsAuthenticated)
		assert.False(t, status.IsAdmin)
	})

	t.Run("Deleted User", func(t *testing.T) {
		_, mockUserRepo, userHandler := setupUserTest()

		userID := uuid.New()
		token := signSessionToken(t, userID, "gone@example.com", time.Hour)

		req := httptest.NewRequest("GET", "/api/auth/status", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
		recorder := httptest.NewRecorder()

		mockUserRepo.On("GetUserByID", mock.Anything, userID).Return(nil, sql.ErrNoRows).Once()

		userHandler.AuthStatus()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var status models.AuthStatusResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.False(t, status.IsAuthenticated)
	})
}

func TestProfile(t *testing.T) {
	t.Run("Success - Own Profile", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		req, authUser := createAuthenticatedRequest("GET", "/api/users/profile", nil, models.RoleUser)
		recorder := httptest.NewRecorder()

		mockUser := &models.User{ID: authUser.ID, Email: authUser.Email, Role: models.RoleUser}

		mockUserService.On("GetUserByID", mock.Anything, authUser.ID).Return(mockUser, nil).Once()

		userHandler.Profile()(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		err := json.Unmarshal(recorder.Body.Bytes(), &resp)
		assert.NoError(t, err)
		assert.True(t, resp.Success)

		mockUserService.AssertExpectations(t)
	})

	t.Run("Failure - No Session", func(t *testing.T) {
		mockUserService, _, userHandler := setupUserTest()

		req := httptest.NewRequest("GET", "/api/users/profile", nil)
		recorder := httptest.NewRecorder()

		userHandler.Profile()(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		mockUserService.AssertNotCalled(t, "GetUserByID")
	})
}
