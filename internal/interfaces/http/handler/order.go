package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apporder "github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/dto"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders *apporder.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *apporder.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List godoc
// @Summary      List orders
// @Description  Orders are read from the backend on every call.
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]order.Order}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	orders, err := h.orders.List(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(orders))
}

// Get godoc
// @Summary      Get one order
// @Tags         orders
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	o, err := h.orders.Get(c.Request.Context(), sess, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Create godoc
// @Summary      Create an order
// @Description  The order needs at least one item with a quantity or one remark.
// @Tags         orders
// @Accept       json
// @Param        request body order.Payload true "Order"
// @Success      201 {object} dto.Response{data=order.Order}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var req order.Payload
	if !h.BindJSON(c, &req) {
		return
	}
	created, err := h.orders.Create(c.Request.Context(), sess, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, orderData(created))
}

// Update godoc
// @Summary      Replace an order
// @Description  The body must carry the complete order.
// @Tags         orders
// @Router       /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req order.Payload
	if !h.BindJSON(c, &req) {
		return
	}
	updated, err := h.orders.Update(c.Request.Context(), sess, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderData(updated))
}

// Complete godoc
// @Summary      Mark an order completed
// @Tags         orders
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo} "already completed"
// @Router       /orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	updated, err := h.orders.CompleteByID(c.Request.Context(), sess, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderData(updated))
}

// Delete godoc
// @Summary      Delete an order
// @Tags         orders
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), sess, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Options godoc
// @Summary      Pick lists of the order form
// @Tags         orders
// @Success      200 {object} dto.Response{data=apporder.Options}
// @Router       /orders/options [get]
func (h *OrderHandler) Options(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	opts, err := h.orders.Options(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, opts)
}

// orderData keeps a missing echo out of the response body
func orderData(o *order.Order) any {
	if o == nil {
		return nil
	}
	return o
}
