package handler

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

const sweetNotFound = "Sweet not found"

// InventoryService defines catalog and stock operations.
type InventoryService interface {
	Add(ctx context.Context, params model.SweetParams) (model.Sweet, error)
	List(ctx context.Context) ([]model.Sweet, error)
	Search(ctx context.Context, filter model.SweetFilter) ([]model.Sweet, error)
	Update(ctx context.Context, id int64, params model.SweetParams) (model.Sweet, error)
	Delete(ctx context.Context, id int64) error
	Purchase(ctx context.Context, id int64, quantity int) (model.Sweet, error)
	Restock(ctx context.Context, id int64, quantity int) (model.Sweet, error)
	UploadImage(ctx context.Context, id int64, r io.Reader) (model.Sweet, error)
	DownloadImage(ctx context.Context, id int64) (io.ReadCloser, error)
}

// Sweet handles HTTP endpoints under /api/sweets.
type Sweet struct {
	inventory     InventoryService
	maxImageBytes int64
	logger        *logger.Logger
}

// NewSweet creates a new Sweet handler. Image uploads larger than maxImageBytes are rejected.
func NewSweet(inventory InventoryService, maxImageBytes int64, logger *logger.Logger) *Sweet {
	return &Sweet{
		inventory:     inventory,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

// sweetRequest accepts price as a JSON number or a quoted decimal string.
type sweetRequest struct {
	Name        string          `json:"name" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
}

func (r sweetRequest) params() model.SweetParams {
	return model.SweetParams{
		Name:        r.Name,
		Category:    r.Category,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Description: r.Description,
	}
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

type sweetResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Quantity    int         `json:"quantity"`
	Description string      `json:"description"`
	HasImage    bool        `json:"hasImage"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toSweetResponse(s model.Sweet) sweetResponse {
	return sweetResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       json.Number(model.FormatPrice(s.Price)),
		Quantity:    s.Quantity,
		Description: s.Description,
		HasImage:    s.ImageKey != "",
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toSweetResponses(sweets []model.Sweet) []sweetResponse {
	out := make([]sweetResponse, 0, len(sweets))
	for _, s := range sweets {
		out = append(out, toSweetResponse(s))
	}
	return out
}

func sweetID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondMessage(c, http.StatusBadRequest, "Invalid sweet id")
		return 0, false
	}
	return id, true
}

// List returns every sweet.
func (h *Sweet) List(c *gin.Context) {
	sweets, err := h.inventory.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSweetResponses(sweets))
}

// Search filters sweets by ?name, ?category, ?minPrice and ?maxPrice.
// Absent parameters do not constrain the result.
func (h *Sweet) Search(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		handleError(c, err)
		return
	}

	sweets, err := h.inventory.Search(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSweetResponses(sweets))
}

func parseFilter(c *gin.Context) (model.SweetFilter, error) {
	var f model.SweetFilter
	if v, ok := c.GetQuery("name"); ok && v != "" {
		f.Name = &v
	}
	if v, ok := c.GetQuery("category"); ok && v != "" {
		f.Category = &v
	}

	for _, p := range []struct {
		key string
		dst **decimal.Decimal
	}{
		{"minPrice", &f.MinPrice},
		{"maxPrice", &f.MaxPrice},
	} {
		v, ok := c.GetQuery(p.key)
		if !ok || v == "" {
			continue
		}
		m, err := model.ParsePrice(v)
		if err != nil {
			return model.SweetFilter{}, fmt.Errorf("%s: %w", p.key, err)
		}
		*p.dst = &m
	}

	return f, nil
}

// Add creates a sweet.
func (h *Sweet) Add(c *gin.Context) {
	var req sweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid data")
		return
	}

	sweet, err := h.inventory.Add(c.Request.Context(), req.params())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sweet added successfully",
		"sweet":   toSweetResponse(sweet),
	})
}

// Update replaces every writable field of a sweet.
func (h *Sweet) Update(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	var req sweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid data")
		return
	}

	sweet, err := h.inventory.Update(c.Request.Context(), id, req.params())
	if err != nil {
		handleNotFound(c, err, sweetNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sweet updated successfully",
		"sweet":   toSweetResponse(sweet),
	})
}

// Delete removes a sweet.
func (h *Sweet) Delete(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	if err := h.inventory.Delete(c.Request.Context(), id); err != nil {
		handleNotFound(c, err, sweetNotFound)
		return
	}

	respondMessage(c, http.StatusOK, "Sweet deleted successfully")
}

// Purchase takes {"quantity": n} units out of stock.
func (h *Sweet) Purchase(c *gin.Context) {
	id, quantity, ok := h.bindQuantity(c)
	if !ok {
		return
	}

	sweet, err := h.inventory.Purchase(c.Request.Context(), id, quantity)
	if err != nil {
		handleNotFound(c, err, sweetNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Sweet purchased successfully. Remaining quantity: %d", sweet.Quantity),
		"quantity": sweet.Quantity,
	})
}

// Restock adds {"quantity": n} units to stock.
func (h *Sweet) Restock(c *gin.Context) {
	id, quantity, ok := h.bindQuantity(c)
	if !ok {
		return
	}

	sweet, err := h.inventory.Restock(c.Request.Context(), id, quantity)
	if err != nil {
		handleNotFound(c, err, sweetNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Sweet restocked successfully. New quantity: %d", sweet.Quantity),
		"quantity": sweet.Quantity,
	})
}

func (h *Sweet) bindQuantity(c *gin.Context) (int64, int, bool) {
	id, ok := sweetID(c)
	if !ok {
		return 0, 0, false
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid quantity")
		return 0, 0, false
	}

	return id, req.Quantity, true
}

// UploadImage stores the request body as the sweet's image.
func (h *Sweet) UploadImage(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxImageBytes+1))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid data")
		return
	}
	if int64(len(body)) > h.maxImageBytes {
		respondMessage(c, http.StatusRequestEntityTooLarge, "Image is too large")
		return
	}
	if len(body) == 0 {
		respondMessage(c, http.StatusBadRequest, "Image is empty")
		return
	}

	sweet, err := h.inventory.UploadImage(c.Request.Context(), id, bytes.NewReader(body))
	if err != nil {
		handleNotFound(c, err, sweetNotFound)
		return
	}

	h.logger.Debug("Sweet handler: image uploaded", "id", id, "bytes", len(body))

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"sweet":   toSweetResponse(sweet),
	})
}

// DownloadImage streams the sweet's image.
func (h *Sweet) DownloadImage(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	rc, err := h.inventory.DownloadImage(c.Request.Context(), id)
	if err != nil {
		handleNotFound(c, err, "Image not found")
		return
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	head, _ := br.Peek(512)
	c.DataFromReader(http.StatusOK, -1, http.DetectContentType(head), br, nil)
}
