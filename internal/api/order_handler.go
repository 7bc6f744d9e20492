package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"swiftcart-backend/internal/cache"
	"swiftcart-backend/internal/domain"
	"swiftcart-backend/internal/logger"
	"swiftcart-backend/internal/repository"
)

type OrderHandler struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	cache    *cache.Service
}

func NewOrderHandler(orders repository.OrderRepository, products repository.ProductRepository, cache *cache.Service) *OrderHandler {
	return &OrderHandler{orders: orders, products: products, cache: cache}
}

// Create places an order and reduces stock per line item. Stock reduction is
// per-item and not transactional with the order write.
func (h *OrderHandler) Create(c *gin.Context) {
	var req domain.NewOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errBadRequest("Please Enter All Fields"))
		return
	}

	if req.UserID == "" || len(req.OrderItems) == 0 || req.ShippingInfo.Address == "" {
		respondError(c, errBadRequest("Please Enter All Fields"))
		return
	}

	order := domain.Order{
		ShippingInfo:    req.ShippingInfo,
		UserID:          req.UserID,
		Subtotal:        req.Subtotal,
		Tax:             req.Tax,
		ShippingCharges: req.ShippingCharges,
		Discount:        req.Discount,
		Total:           req.Total,
		Status:          domain.StatusProcessing,
		OrderItems:      req.OrderItems,
	}
	if err := h.orders.Insert(c.Request.Context(), &order); err != nil {
		respondError(c, err)
		return
	}

	for _, item := range order.OrderItems {
		if err := h.products.ReduceStock(c.Request.Context(), item.ProductID, item.Quantity); err != nil {
			logger.Error("failed to reduce stock for product "+item.ProductID.Hex(), err)
		}
	}

	h.cache.Invalidate(cache.InvalidateOptions{
		Product: true,
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
	})
	// Each ordered product's cached snapshot now carries stale stock.
	for _, item := range order.OrderItems {
		h.cache.Delete(cache.KeyProduct(item.ProductID.Hex()))
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order Placed Successfully"})
}

// GetMy lists the calling user's orders, identified by the same ?id= query
// parameter the admin gate uses.
func (h *OrderHandler) GetMy(c *gin.Context) {
	userID := c.Query("id")

	var orders []domain.Order
	if !h.cache.TryGet(cache.KeyMyOrders(userID), &orders) {
		var err error
		orders, err = h.orders.FindByUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		h.cache.SetJSON(cache.KeyMyOrders(userID), orders)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *OrderHandler) GetAll(c *gin.Context) {
	var orders []domain.Order
	if !h.cache.TryGet(cache.KeyAllOrders, &orders) {
		var err error
		orders, err = h.orders.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		h.cache.SetJSON(cache.KeyAllOrders, orders)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var order domain.Order
	if !h.cache.TryGet(cache.KeyOrder(id), &order) {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			respondError(c, errNotFound("Order Not Found"))
			return
		}
		found, err := h.orders.FindByID(c.Request.Context(), oid)
		if err != nil {
			respondError(c, err)
			return
		}
		order = *found
		h.cache.SetJSON(cache.KeyOrder(id), order)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// Process advances an order one step: Processing -> Shipped -> Delivered.
func (h *OrderHandler) Process(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, errNotFound("Order Not Found"))
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), oid)
	if err != nil {
		respondError(c, err)
		return
	}

	switch order.Status {
	case domain.StatusProcessing:
		order.Status = domain.StatusShipped
	case domain.StatusShipped:
		order.Status = domain.StatusDelivered
	default:
		order.Status = domain.StatusDelivered
	}

	if err := h.orders.Update(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(cache.InvalidateOptions{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID.Hex(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Processed Successfully"})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, errNotFound("Order Not Found"))
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), oid)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.orders.Delete(c.Request.Context(), oid); err != nil {
		respondError(c, err)
		return
	}

	h.cache.Invalidate(cache.InvalidateOptions{
		Order:   true,
		Admin:   true,
		UserID:  order.UserID,
		OrderID: order.ID.Hex(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order Deleted Successfully"})
}
