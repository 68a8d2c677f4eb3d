package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmadir/internal/model"
	"pharmadir/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterInput true "Registration data"
// @Success 201 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req model.RegisterInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginInput true "Login credentials"
// @Success 201 {object} model.LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.LoginInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// ForgotPassword godoc
// @Summary Send a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.ForgotPasswordInput true "Account email"
// @Success 201 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req model.ForgotPasswordInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// ResetPassword godoc
// @Summary Reset a password with the emailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.ResetPasswordInput true "Reset code and new password"
// @Success 201 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req model.ResetPasswordInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.NewPassword)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}
