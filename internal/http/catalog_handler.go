package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/middleware"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CatalogHandler exposes the density catalog and its stored versions.
type CatalogHandler struct {
	catalog service.CatalogService
	engine  service.Allocator
	audit   middleware.LogSink
}

// NewCatalogHandler creates a new CatalogHandler instance. engine's plan
// cache is invalidated whenever the catalog is replaced.
func NewCatalogHandler(catalog service.CatalogService, engine service.Allocator, audit middleware.LogSink) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		engine:  engine,
		audit:   audit,
	}
}

// Get handles GET /api/catalog requests.
//
// @Summary      Get the active catalog
// @Description  Returns the density catalog used for allocations, in lookup order. Version 0 is the built-in catalog.
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CatalogResponse} "Active catalog"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/catalog [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)

	snapshot, err := h.catalog.Active(c.Request.Context())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(dto.CatalogResponse{
		Version: snapshot.Version,
		Source:  snapshot.Source,
		Entries: snapshot.Entries,
	})
}

// Replace handles PUT /api/catalog requests.
//
// @Summary      Replace the catalog
// @Description  Stores a new catalog version and makes it active. Names are normalized; duplicate names, blank names and negative densities are rejected. Cached plans are dropped.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateCatalogRequest true "Catalog entries in lookup order"
// @Success      201 {object} dto.SuccessResponse{data=dto.CatalogVersionResponse} "Stored version"
// @Failure      400 {object} dto.ErrorResponse "Invalid catalog"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      503 {object} dto.ErrorResponse "No catalog store configured"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/catalog [put]
func (h *CatalogHandler) Replace(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.UpdateCatalogRequest](c)
	if err != nil {
		builder.RequestError(err)
		return
	}

	stored, err := h.catalog.Replace(c.Request.Context(), req.Entries, middleware.GetUserID(c))
	if err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionUpdateCatalog, "Catalog update failed", err, map[string]interface{}{
			"entries": len(req.Entries),
		})
		builder.ServiceError(err)
		return
	}
	if h.engine != nil {
		h.engine.InvalidateCache()
	}

	middleware.AuditLog(h.audit, c, middleware.ActionUpdateCatalog, "Catalog replaced", map[string]interface{}{
		"version": stored.Version,
		"entries": len(stored.Entries),
	})
	builder.SuccessWithMessage(http.StatusCreated, dto.CatalogVersionResponse{
		Version:   stored.Version,
		Active:    stored.Active,
		Entries:   len(stored.Entries),
		CreatedBy: stored.CreatedBy,
		CreatedAt: stored.CreatedAt,
	}, i18n.SuccessKeyCatalogUpdated)
}

// History handles GET /api/catalog/history requests.
//
// @Summary      List catalog versions
// @Description  Stored catalog versions, newest first.
// @Tags         Catalog
// @Produce      json
// @Param        limit query int false "Maximum versions to return (1-100)" default(20)
// @Success      200 {object} dto.SuccessResponse{data=[]dto.CatalogVersionResponse} "Versions"
// @Failure      400 {object} dto.ErrorResponse "Invalid limit"
// @Failure      503 {object} dto.ErrorResponse "No catalog store configured"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/catalog/history [get]
func (h *CatalogHandler) History(c *gin.Context) {
	builder := NewResponseBuilder(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, &dto.ValidationError{
				Field:   "limit",
				Message: "must be between 1 and " + strconv.Itoa(maxHistoryLimit),
			})
			return
		}
		limit = n
	}

	versions, err := h.catalog.History(c.Request.Context(), limit)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	resp := make([]dto.CatalogVersionResponse, len(versions))
	for i, v := range versions {
		resp[i] = dto.CatalogVersionResponse{
			Version:   v.Version,
			Active:    v.Active,
			Entries:   len(v.Entries),
			CreatedBy: v.CreatedBy,
			CreatedAt: v.CreatedAt,
		}
	}
	builder.SuccessOK(resp)
}
