package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"pharmadir/internal/model"
	"pharmadir/internal/service"
	"pharmadir/internal/storage"
)

const pharmacyImageFolder = "pharmacies"

// PharmacyHandler handles pharmacy endpoints.
type PharmacyHandler struct {
	pharmacyService service.PharmacyService
	uploader        storage.Uploader
}

// NewPharmacyHandler creates a new pharmacy handler. uploader may be nil, in
// which case multipart image uploads are rejected.
func NewPharmacyHandler(pharmacyService service.PharmacyService, uploader storage.Uploader) *PharmacyHandler {
	return &PharmacyHandler{
		pharmacyService: pharmacyService,
		uploader:        uploader,
	}
}

// Create godoc
// @Summary Create a pharmacy
// @Tags pharmacy
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body model.CreatePharmacyInput true "Pharmacy data"
// @Param image formData file false "Pharmacy photo"
// @Success 201 {object} model.CreatePharmacyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /pharmacy [post]
func (h *PharmacyHandler) Create(c echo.Context) error {
	var req model.CreatePharmacyInput
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		url, err := h.uploadImage(c)
		if err != nil {
			return err
		}
		if url != "" {
			req.Image = url
		}
	}

	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}

	resp, err := h.pharmacyService.Create(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// uploadImage stores the optional "image" form file and returns its URL.
func (h *PharmacyHandler) uploadImage(c echo.Context) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", badRequest("invalid image upload")
	}
	if h.uploader == nil {
		return "", badRequest("image upload is not configured")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", badRequest("invalid image upload")
	}
	defer file.Close()

	url, err := h.uploader.UploadFile(c.Request().Context(), file, fileHeader.Filename,
		fileHeader.Header.Get(echo.HeaderContentType), pharmacyImageFolder)
	if err != nil {
		c.Logger().Errorf("upload pharmacy image: %v", err)
		return "", badRequest("Failed to upload image")
	}
	return url, nil
}

// FindAll godoc
// @Summary List pharmacies
// @Tags pharmacy
// @Produce json
// @Success 200 {array} model.Pharmacy
// @Failure 400 {object} errors.ErrorResponse
// @Router /pharmacy [get]
func (h *PharmacyHandler) FindAll(c echo.Context) error {
	pharmacies, err := h.pharmacyService.FindAll(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, pharmacies)
}

// FindOne godoc
// @Summary Get a pharmacy
// @Tags pharmacy
// @Produce json
// @Param id path string true "Pharmacy ID"
// @Success 200 {object} model.Pharmacy
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pharmacy/{id} [get]
func (h *PharmacyHandler) FindOne(c echo.Context) error {
	pharmacy, err := h.pharmacyService.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, pharmacy)
}

// Update godoc
// @Summary Update a pharmacy
// @Tags pharmacy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pharmacy ID"
// @Param request body model.UpdatePharmacyInput true "Fields to change"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pharmacy/{id} [patch]
func (h *PharmacyHandler) Update(c echo.Context) error {
	var req model.UpdatePharmacyInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.pharmacyService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Remove godoc
// @Summary Delete a pharmacy
// @Tags pharmacy
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pharmacy ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pharmacy/{id} [delete]
func (h *PharmacyHandler) Remove(c echo.Context) error {
	resp, err := h.pharmacyService.Remove(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Toggle a pharmacy between open and close
// @Tags pharmacy
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pharmacy ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pharmacy/{id}/status [patch]
func (h *PharmacyHandler) UpdateStatus(c echo.Context) error {
	resp, err := h.pharmacyService.UpdateStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, resp)
}
