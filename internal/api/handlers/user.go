package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/arnavkapoor/storefront-platform/internal/api/middleware"
	"github.com/arnavkapoor/storefront-platform/internal/errors"
	models "github.com/arnavkapoor/storefront-platform/internal/models"
	service "github.com/arnavkapoor/storefront-platform/internal/services"
	"github.com/arnavkapoor/storefront-platform/internal/utils"
	"github.com/arnavkapoor/storefront-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService    service.UserService
	authMiddleware *middleware.AuthMiddleware
	sessionTTL     time.Duration
	secureCookies  bool
	validator      *validator.Validate
}

func NewUserHandler(userService service.UserService, authMiddleware *middleware.AuthMiddleware, sessionTTL time.Duration, secureCookies bool) *UserHandler {
	return &UserHandler{
		userService:    userService,
		authMiddleware: authMiddleware,
		sessionTTL:     sessionTTL,
		secureCookies:  secureCookies,
		validator:      validator.New(),
	}
}

// Register godoc
//	@Summary		Register a new account
//	@Description	Creates a new user with the default role.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.RegisterRequest	true	"Registration details"
//	@Success		201		{object}	models.User				"Successfully registered"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		409		{object}	response.ErrorResponse	"Email already registered"
//	@Router			/users/register [post]
func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.userService.Register(r.Context(), &req)
		if err != nil {
			logger.Error("User registration failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("User registered", slog.String("userId", user.ID.String()))
		response.Success(w, http.StatusCreated, user)

	}
}

// Login godoc
//	@Summary		Log in
//	@Description	Verifies credentials and sets the session cookie.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Login credentials"
//	@Success		200			{object}	models.LoginResponse	"Session established"
//	@Failure		401			{object}	models.LoginResponse	"Invalid credentials"
//	@Failure		429			{object}	models.LoginResponse	"Too many attempts"
//	@Router			/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			status := http.StatusUnauthorized
			if resp.RetryAfter > 0 {
				status = http.StatusTooManyRequests
			}

			response.WriteJson(w, status, resp)
			return
		}

		h.setSessionCookie(w, resp.Token, int(h.sessionTTL.Seconds()))

		logger.Info("User logged in", slog.String("email", req.Email))
		response.WriteJson(w, http.StatusOK, resp)

	}
}

// Logout godoc
//	@Summary		Log out
//	@Description	Clears the session cookie.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	response.APIResponse
//	@Router			/users/logout [post]
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.setSessionCookie(w, "", -1)

		response.Success(w, http.StatusOK, map[string]bool{"success": true})

	}
}

// Profile godoc
//	@Summary		Get own profile
//	@Description	Returns the authenticated user's profile.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	models.User
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Router			/users/profile [get]
func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		authUser, ok := middleware.UserFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized profile access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		user, err := h.userService.GetUserByID(r.Context(), authUser.ID)
		if err != nil {
			logger.Warn("User not found", slog.String("userId", authUser.ID.String()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, user)

	}
}

// AuthStatus godoc
//	@Summary		Session status
//	@Description	Reports whether the caller has a valid session and whether it is an admin session. Never errors.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	models.AuthStatusResponse
//	@Router			/auth/status [get]
func (h *UserHandler) AuthStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		authUser, err := h.authMiddleware.Verify(r)
		if err != nil {
			response.WriteJson(w, http.StatusOK, models.AuthStatusResponse{IsAuthenticated: false})
			return
		}

		response.WriteJson(w, http.StatusOK, models.AuthStatusResponse{
			IsAuthenticated: true,
			IsAdmin:         authUser.IsAdmin(),
		})

	}
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
