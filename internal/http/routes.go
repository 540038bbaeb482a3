package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// PlanRoutes mounts allocation, density and profile endpoints.
type PlanRoutes struct {
	allocation *AllocationHandler
	profile    *ProfileHandler
}

// NewPlanRoutes creates a new PlanRoutes instance. Nil handlers are skipped.
func NewPlanRoutes(allocation *AllocationHandler, profile *ProfileHandler) *PlanRoutes {
	return &PlanRoutes{allocation: allocation, profile: profile}
}

// RegisterRoutes implements RouteGroup.
func (r *PlanRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	if r.allocation != nil {
		rg.POST("/plan", r.allocation.Plan)
		rg.POST("/plan/single", r.allocation.PlanSingleDay)
		rg.POST("/plan/multi", r.allocation.PlanMultiDay)
		rg.POST("/density/resolve", r.allocation.ResolveDensity)
	}
	if r.profile != nil {
		rg.POST("/profile/targets", r.profile.Targets)
	}
}

// CatalogRoutes mounts the density catalog endpoints.
type CatalogRoutes struct {
	handler *CatalogHandler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(handler *CatalogHandler) *CatalogRoutes {
	return &CatalogRoutes{handler: handler}
}

// RegisterRoutes implements RouteGroup.
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	if r.handler == nil {
		return
	}
	rg.GET("/catalog", r.handler.Get)
	rg.PUT("/catalog", r.handler.Replace)
	rg.GET("/catalog/history", r.handler.History)
}
