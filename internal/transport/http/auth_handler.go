package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/foundit/foundit-api/internal/service"
	"github.com/foundit/foundit-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/v1/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/google", handler.loginWithGoogle)
	group.POST("/refresh", handler.refresh)
	group.POST("/forgot-password", handler.forgotPassword)
	group.POST("/reset-password/:token", handler.resetPassword)

	users := e.Group("/api/v1/users", RequireAuth(auth))
	users.PUT("/:id", handler.updateProfile)
	users.POST("/:id/password", handler.changePassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Register(c.Request().Context(), req.Username, req.FullName, req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusCreated, buildTokenResponse(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, buildTokenResponse(result))
}

func (h *AuthHandler) loginWithGoogle(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, buildTokenResponse(result))
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, buildTokenResponse(result))
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("message", "password reset email sent"))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ConfirmPasswordReset(c.Request().Context(), c.Param("token"), req.NewPassword); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("message", "password updated"))
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	targetID, ok := requireSelf(c)
	if !ok {
		return nil
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.auth.UpdateProfile(c.Request().Context(), targetID, req.FullName, req.Username)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("user", buildAuthUser(updated)))
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	targetID, ok := requireSelf(c)
	if !ok {
		return nil
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ChangePassword(c.Request().Context(), targetID, req.CurrentPassword, req.NewPassword); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("message", "password updated"))
}

// requireSelf resolves the :id path parameter and checks it names the
// authenticated user. Account mutation is self-service only. When it returns
// false the rejection has already been written.
func requireSelf(c echo.Context) (uuid.UUID, bool) {
	current, ok := CurrentUser(c)
	if !ok || current == nil {
		_ = c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
		return uuid.Nil, false
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
		return uuid.Nil, false
	}
	if targetID != current.ID {
		_ = c.JSON(http.StatusForbidden, util.Error("not allowed"))
		return uuid.Nil, false
	}
	return targetID, true
}

func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrPasswordTooWeak),
		errors.Is(err, service.ErrResetTokenInvalid), errors.Is(err, service.ErrResetTokenExpired):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrPasswordMismatch):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrEmailAlreadyUsed), errors.Is(err, service.ErrUsernameAlreadyTaken):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	case errors.Is(err, service.ErrResetDeliveryFailed):
		return c.JSON(http.StatusBadGateway, util.Error("unable to deliver reset email"))
	default:
		c.Logger().Errorf("auth: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal server error"))
	}
}
