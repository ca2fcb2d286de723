package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"boutika/internal/model"
	"boutika/internal/service"

	"github.com/rs/zerolog"
)

// Multipart uploads are product photos; anything bigger than this is not one.
const maxUploadBytes = 10 << 20

// AdminHandler handles the product editor endpoints. All routes sit behind
// the admin API key.
type AdminHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin product handler.
func NewAdminHandler(service service.ProductService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// Create handles POST /api/admin/products requests. The body is multipart
// form data; the image part is mandatory and is uploaded before the record
// is inserted.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	input, image, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	product, err := h.service.Create(r.Context(), input, image.upload())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id} requests. The image part is
// optional; omitting it keeps the stored image URL.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/admin/products/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	input, image, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	product, err := h.service.Update(r.Context(), productID, input, image.upload())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id} requests. Confirmation
// prompts are the client's job; here the admin key is authority enough.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/admin/products/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "product ID is required", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), productID); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// formImage pairs an opened multipart file with its metadata so the caller
// can close it after the service consumed the stream.
type formImage struct {
	file interface{ Close() error }
	data *service.ImageUpload
}

func (f *formImage) upload() *service.ImageUpload {
	if f == nil {
		return nil
	}
	return f.data
}

func (f *formImage) close() {
	if f != nil && f.file != nil {
		f.file.Close()
	}
}

// parseProductForm reads the multipart product fields and the optional image
// part. A false return means the response has already been written.
func (h *AdminHandler) parseProductForm(w http.ResponseWriter, r *http.Request) (model.ProductInput, *formImage, bool) {
	var input model.ProductInput

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid multipart form", h.logger)
		return input, nil, false
	}

	input.Name = strings.TrimSpace(r.FormValue("name"))
	input.Category = r.FormValue("category")
	input.Description = strings.TrimSpace(r.FormValue("description"))

	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidPrice, "price must be a whole number", h.logger)
			return input, nil, false
		}
		input.Price = price
	}

	if stockStr := r.FormValue("stock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeInvalidStock, "stock must be a whole number", h.logger)
			return input, nil, false
		}
		input.Stock = stock
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, true
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid image part", h.logger)
		return input, nil, false
	}

	return input, &formImage{
		file: file,
		data: &service.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        file,
		},
	}, true
}
