package httpapi

import (
	"errors"
	"net/http"

	"sepet-be/internal/category"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type createCategoryRequest struct {
	CategoryName string `json:"categoryName"`
}

// List handles GET /admin/category.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Create handles POST /admin/category.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(c.Request.Context(), req.CategoryName)
	if err != nil {
		if errors.Is(err, category.ErrNameRequired) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to create category")
		return
	}

	c.JSON(http.StatusOK, created)
}
