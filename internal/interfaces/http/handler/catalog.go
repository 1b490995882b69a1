package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/catalog"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/interfaces/http/dto"
)

// PartyHandler handles party master data
type PartyHandler struct {
	BaseHandler
	parties *catalog.PartyService
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(parties *catalog.PartyService) *PartyHandler {
	return &PartyHandler{parties: parties}
}

// List godoc
// @Summary      List parties
// @Tags         parties
// @Router       /parties [get]
func (h *PartyHandler) List(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	parties, err := h.parties.List(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(parties))
}

// Create godoc
// @Summary      Create a party
// @Tags         parties
// @Param        request body reference.PartyPayload true "Party"
// @Router       /parties [post]
func (h *PartyHandler) Create(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var req reference.PartyPayload
	if !h.BindJSON(c, &req) {
		return
	}
	party, err := h.parties.Create(c.Request.Context(), sess, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, party)
}

// Update godoc
// @Summary      Replace a party
// @Tags         parties
// @Router       /parties/{id} [put]
func (h *PartyHandler) Update(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req reference.PartyPayload
	if !h.BindJSON(c, &req) {
		return
	}
	party, err := h.parties.Update(c.Request.Context(), sess, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, party)
}

// Delete godoc
// @Summary      Delete a party
// @Tags         parties
// @Router       /parties/{id} [delete]
func (h *PartyHandler) Delete(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.parties.Delete(c.Request.Context(), sess, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DesignHandler handles designs, item types and colours
type DesignHandler struct {
	BaseHandler
	designs *catalog.DesignService
}

// NewDesignHandler creates a new design handler
func NewDesignHandler(designs *catalog.DesignService) *DesignHandler {
	return &DesignHandler{designs: designs}
}

// List godoc
// @Summary      List designs with their colours
// @Tags         designs
// @Router       /designs [get]
func (h *DesignHandler) List(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	designs, err := h.designs.List(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(designs))
}

// ItemTypes godoc
// @Summary      List garment item types
// @Tags         designs
// @Router       /designs/item-types [get]
func (h *DesignHandler) ItemTypes(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	types, err := h.designs.ItemTypes(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(types))
}

// Colors godoc
// @Summary      List colours
// @Tags         designs
// @Router       /designs/colors [get]
func (h *DesignHandler) Colors(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	colors, err := h.designs.Colors(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(colors))
}

// GroupedColors godoc
// @Summary      Colours grouped by family
// @Tags         designs
// @Router       /designs/colors/grouped [get]
func (h *DesignHandler) GroupedColors(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	families, err := h.designs.GroupedColors(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(families))
}

// Create godoc
// @Summary      Create a design
// @Tags         designs
// @Param        request body reference.DesignPayload true "Design"
// @Router       /designs [post]
func (h *DesignHandler) Create(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var req reference.DesignPayload
	if !h.BindJSON(c, &req) {
		return
	}
	design, err := h.designs.Create(c.Request.Context(), sess, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, design)
}

// Update godoc
// @Summary      Replace a design
// @Tags         designs
// @Router       /designs/{id} [put]
func (h *DesignHandler) Update(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req reference.DesignPayload
	if !h.BindJSON(c, &req) {
		return
	}
	design, err := h.designs.Update(c.Request.Context(), sess, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, design)
}

// Delete godoc
// @Summary      Delete a design
// @Tags         designs
// @Router       /designs/{id} [delete]
func (h *DesignHandler) Delete(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.designs.Delete(c.Request.Context(), sess, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// TransportHandler handles transport options
type TransportHandler struct {
	BaseHandler
	transports *catalog.TransportService
}

// NewTransportHandler creates a new transport handler
func NewTransportHandler(transports *catalog.TransportService) *TransportHandler {
	return &TransportHandler{transports: transports}
}

// List godoc
// @Summary      List transport options
// @Tags         transport
// @Router       /transport [get]
func (h *TransportHandler) List(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	options, err := h.transports.List(c.Request.Context(), sess)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(options))
}

// Create godoc
// @Summary      Create a transport option
// @Tags         transport
// @Param        request body reference.TransportPayload true "Transport"
// @Router       /transport [post]
func (h *TransportHandler) Create(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	var req reference.TransportPayload
	if !h.BindJSON(c, &req) {
		return
	}
	option, err := h.transports.Create(c.Request.Context(), sess, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, option)
}

// Update godoc
// @Summary      Replace a transport option
// @Tags         transport
// @Router       /transport/{id} [put]
func (h *TransportHandler) Update(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req reference.TransportPayload
	if !h.BindJSON(c, &req) {
		return
	}
	option, err := h.transports.Update(c.Request.Context(), sess, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, option)
}

// Delete godoc
// @Summary      Delete a transport option
// @Tags         transport
// @Router       /transport/{id} [delete]
func (h *TransportHandler) Delete(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.transports.Delete(c.Request.Context(), sess, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
