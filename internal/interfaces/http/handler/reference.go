package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/application/refdata"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/reference"
)

// SourceFunc returns the reference data source authenticated with a backend token
type SourceFunc func(token string) refdata.Source

// ReferenceHandler serves the per-session reference data cache
type ReferenceHandler struct {
	BaseHandler
	caches *refdata.Registry
	source SourceFunc
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(caches *refdata.Registry, source SourceFunc) *ReferenceHandler {
	return &ReferenceHandler{caches: caches, source: source}
}

// ResourceResponse is one reference collection with its load state
type ResourceResponse struct {
	Resource reference.Resource `json:"resource"`
	Items    any                `json:"items"`
	Status   refdata.Status     `json:"status"`
}

// RefreshResponse reports a refresh of several collections
type RefreshResponse struct {
	Statuses map[reference.Resource]refdata.Status `json:"statuses"`
	Errors   map[reference.Resource]string         `json:"errors,omitempty"`
}

func (h *ReferenceHandler) cache(sess *identity.Session) *refdata.Cache {
	return h.caches.ForSession(sess.ID, h.source(sess.BackendToken))
}

// Snapshot godoc
// @Summary      All reference collections of the session
// @Description  Empty or stale collections start loading in the background; their status says so.
// @Tags         reference
// @Produce      json
// @Success      200 {object} dto.Response{data=refdata.Snapshot}
// @Router       /reference [get]
func (h *ReferenceHandler) Snapshot(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	h.Success(c, h.cache(sess).Snapshot(c.Request.Context()))
}

// Get godoc
// @Summary      One reference collection
// @Tags         reference
// @Param        resource path string true "item_types, colors, parties, designs or transport"
// @Router       /reference/{resource} [get]
func (h *ReferenceHandler) Get(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	resource, err := reference.ParseResource(c.Param("resource"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.read(c, h.cache(sess), resource))
}

// Refresh godoc
// @Summary      Refetch one reference collection
// @Tags         reference
// @Param        resource path string true "item_types, colors, parties, designs or transport"
// @Router       /reference/{resource}/refresh [post]
func (h *ReferenceHandler) Refresh(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}
	resource, err := reference.ParseResource(c.Param("resource"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	cache := h.cache(sess)
	if err := cache.Refresh(c.Request.Context(), resource); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.read(c, cache, resource))
}

// RefreshAll godoc
// @Summary      Refetch every reference collection
// @Description  Collections refresh independently. A failed collection keeps its previous items and is listed under errors.
// @Tags         reference
// @Success      200 {object} dto.Response{data=RefreshResponse}
// @Router       /reference/refresh [post]
func (h *ReferenceHandler) RefreshAll(c *gin.Context) {
	sess, ok := h.Session(c)
	if !ok {
		return
	}

	cache := h.cache(sess)
	resp := RefreshResponse{}
	for resource, err := range cache.RefreshAll(c.Request.Context()) {
		if err == nil {
			continue
		}
		if resp.Errors == nil {
			resp.Errors = make(map[reference.Resource]string)
		}
		resp.Errors[resource] = err.Error()
	}
	resp.Statuses = cache.Statuses()
	h.Success(c, resp)
}

func (h *ReferenceHandler) read(c *gin.Context, cache *refdata.Cache, resource reference.Resource) ResourceResponse {
	ctx := c.Request.Context()
	var items any
	switch resource {
	case reference.ResourceItemTypes:
		items = cache.ItemTypes(ctx)
	case reference.ResourceColors:
		items = cache.Colors(ctx)
	case reference.ResourceParties:
		items = cache.Parties(ctx)
	case reference.ResourceDesigns:
		items = cache.Designs(ctx)
	case reference.ResourceTransports:
		items = cache.Transports(ctx)
	}
	status, _ := cache.Status(resource)
	return ResourceResponse{Resource: resource, Items: items, Status: status}
}
