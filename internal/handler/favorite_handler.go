package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmadir/internal/model"
	"pharmadir/internal/service"
)

// FavoriteHandler handles the favorites endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorites handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add godoc
// @Summary Add a pharmacy to favorites
// @Tags favorit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.FavoritesInput true "First element is added"
// @Success 201 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorit [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	var req model.FavoritesInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.favoriteService.AddFavorit(c.Request().Context(), req, c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Remove godoc
// @Summary Remove a pharmacy from favorites
// @Tags favorit
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.FavoritesInput true "First element is removed"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /favorit [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	var req model.FavoritesInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.favoriteService.RemoveFavorit(c.Request().Context(), req, c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
