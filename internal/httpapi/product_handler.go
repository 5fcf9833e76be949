package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"sepet-be/internal/product"
	"sepet-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type createProductRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
	CategoryID  *int    `json:"categoryId"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"imageUrl"`
	CategoryID  *int     `json:"categoryId"`
}

// Create handles POST /products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), product.CreateParams{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNameRequired),
			errors.Is(err, product.ErrInvalidPrice),
			errors.Is(err, product.ErrInvalidStock):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to create product")
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// List handles GET /products?search=&categoryId=. Both filters are
// optional and combine conjunctively.
func (h *ProductHandler) List(c *gin.Context) {
	var filter product.ListFilter

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}
	if raw := c.Query("categoryId"); raw != "" {
		categoryID, err := utils.ToID(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid category id")
			return
		}
		filter.CategoryID = &categoryID
	}

	products, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetByID handles GET /products/:id.
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := utils.ToID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load product")
		return
	}

	c.JSON(http.StatusOK, p)
}

// Update handles PUT /products/:id. Omitted fields keep their value.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := utils.ToID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Update(c.Request.Context(), product.UpdateParams{
		ID:          id,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, product.ErrInvalidPrice),
			errors.Is(err, product.ErrInvalidStock):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to update product")
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := utils.ToID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
