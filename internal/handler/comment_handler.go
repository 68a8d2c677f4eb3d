package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmadir/internal/model"
	"pharmadir/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create godoc
// @Summary Comment on a pharmacy
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateCommentInput true "Comment"
// @Success 201 {object} model.CreateCommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req model.CreateCommentInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.commentService.CreateComment(c.Request().Context(), req, c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List the comments of a pharmacy
// @Tags comments
// @Produce json
// @Param pharmacyId path string true "Pharmacy ID"
// @Success 200 {array} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{pharmacyId} [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.commentService.GetComments(c.Request().Context(), c.Param("pharmacyId"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Delete godoc
// @Summary Delete one of your comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param pharmacyId path string true "Pharmacy ID"
// @Param commentId path string true "Comment ID"
// @Success 200 {object} model.MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{pharmacyId}/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	resp, err := h.commentService.DeleteComment(c.Request().Context(),
		c.Param("pharmacyId"), c.Param("commentId"), c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
