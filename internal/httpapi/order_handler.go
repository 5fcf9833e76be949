package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"sepet-be/internal/middleware"
	"sepet-be/internal/order"
	"sepet-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type cartItemRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type removeCartItemRequest struct {
	ProductID int `json:"productId"`
}

type checkoutRequest struct {
	Items   []cartItemRequest `json:"items"`
	Address *string           `json:"address"`
}

type updateAddressRequest struct {
	ID      int    `json:"id"`
	Address string `json:"address"`
}

type updateStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

type updateDetailsRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	AdminNote      string `json:"adminNote"`
}

// AddToCart handles POST /cart/add and returns the full cart contents.
func (h *OrderHandler) AddToCart(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	lines, err := h.svc.AddToCart(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrInsufficientStock):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrProductNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to add to cart")
		}
		return
	}

	c.JSON(http.StatusOK, lines)
}

// RemoveFromCart handles POST /cart/remove.
func (h *OrderHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req removeCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.svc.RemoveFromCart(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrCartNotFound), errors.Is(err, order.ErrItemNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to remove from cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

// Checkout handles POST /orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]order.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, order.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	placed, err := h.svc.Checkout(c.Request.Context(), userID, items, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCheckout),
			errors.Is(err, order.ErrInvalidQuantity),
			errors.Is(err, order.ErrInsufficientStock):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrProductNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	c.JSON(http.StatusOK, placed)
}

// UpdateAddress handles PUT /orders.
func (h *OrderHandler) UpdateAddress(c *gin.Context) {
	var req updateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID <= 0 || strings.TrimSpace(req.Address) == "" {
		respondError(c, http.StatusBadRequest, "id and address are required")
		return
	}

	if err := h.svc.UpdateAddress(c.Request.Context(), req.ID, req.Address); err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order updated"})
}

// ListForAdmin handles GET /admin/orders?status=&search=.
func (h *OrderHandler) ListForAdmin(c *gin.Context) {
	var status, search *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}
	if raw := strings.TrimSpace(c.Query("search")); raw != "" {
		search = &raw
	}

	orders, err := h.svc.ListForAdmin(c.Request.Context(), status, search)
	if err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to list orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// Delete handles DELETE /admin/orders/:id. Deleting an order that is
// already gone still succeeds.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := utils.ToID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

// UpdateStatus handles POST /admin/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := utils.ToID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.svc.UpdateStatus(c.Request.Context(), id, order.Status(req.OrderStatus))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrInvalidTransition):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrOrderNotFound):
			respondError(c, http.StatusNotFound, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// UpdateDetails handles POST /admin/orders/:id/details.
func (h *OrderHandler) UpdateDetails(c *gin.Context) {
	id, err := utils.ToID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateDetails(c.Request.Context(), id, req.TrackingNumber, req.AdminNote)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update order details")
		return
	}

	c.JSON(http.StatusOK, updated)
}
