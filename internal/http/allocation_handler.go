package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/middleware"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

// DefaultMealsPerDay is used when neither the request nor a profile names one.
const DefaultMealsPerDay = 4

// AllocationHandler serves meal plan allocation and density lookups.
type AllocationHandler struct {
	engine      service.Allocator
	catalog     service.CatalogService
	audit       middleware.LogSink
	mealsPerDay int
}

// AllocationHandlerOption configures an AllocationHandler.
type AllocationHandlerOption func(*AllocationHandler)

// WithDefaultMealsPerDay sets the meal count used when a request omits it.
func WithDefaultMealsPerDay(n int) AllocationHandlerOption {
	return func(h *AllocationHandler) {
		if n > 0 {
			h.mealsPerDay = n
		}
	}
}

// WithAuditSink records one audit entry per allocation.
func WithAuditSink(sink middleware.LogSink) AllocationHandlerOption {
	return func(h *AllocationHandler) {
		h.audit = sink
	}
}

// NewAllocationHandler creates a new AllocationHandler instance.
func NewAllocationHandler(engine service.Allocator, catalog service.CatalogService, opts ...AllocationHandlerOption) *AllocationHandler {
	h := &AllocationHandler{
		engine:      engine,
		catalog:     catalog,
		mealsPerDay: DefaultMealsPerDay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PlanSingleDay handles POST /api/plan/single requests.
//
// @Summary      Split a pool over one day
// @Description  Puts every product into every meal slot of a single day in equal parts. No calorie limit is applied.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body dto.SingleDayRequest true "Pool of products"
// @Success      200 {object} dto.SuccessResponse{data=model.SlotAssignment} "Meal slots"
// @Failure      400 {object} dto.ErrorResponse "Invalid pool or meal count"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/plan/single [post]
func (h *AllocationHandler) PlanSingleDay(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.SingleDayRequest](c)
	if err != nil {
		builder.RequestError(err)
		return
	}

	meals := req.MealsPerDay
	if meals == 0 {
		meals = h.mealsPerDay
	}

	assignment, err := h.engine.AllocateSingleDay(dto.ToItems(req.Items), meals)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionAllocatePlan, "Single day plan allocated", map[string]interface{}{
		"mode":          string(model.ModeSingleDay),
		"items":         len(req.Items),
		"meals_per_day": meals,
	})
	builder.SuccessWithMessage(http.StatusOK, assignment, i18n.SuccessKeyPlanAllocated)
}

// Plan handles POST /api/plan requests.
//
// @Summary      Allocate a meal plan
// @Description  Resolves calorie densities, then either splits the pool over one day or, when it holds more than threshold_factor days of energy, over as many days as needed with each day capped at daily_cap + excess_cap. A profile may replace daily_cap and meals_per_day; a catalog replaces the active density catalog for this request.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body dto.PlanRequest true "Pool and limits"
// @Success      200 {object} dto.SuccessResponse{data=model.MealPlan} "Meal plan"
// @Failure      400 {object} dto.ErrorResponse "Invalid pool, limit, meal count, profile or catalog"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      422 {object} dto.ErrorResponse "Pool could not be spread over a bounded number of days"
// @Failure      429 {object} dto.ErrorResponse "Rate limit exceeded"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/plan [post]
func (h *AllocationHandler) Plan(c *gin.Context) {
	h.plan(c, false)
}

// PlanMultiDay handles POST /api/plan/multi requests.
//
// @Summary      Allocate a capped multi-day plan
// @Description  Same as /api/plan but always plans over days, whatever the pool's size.
// @Tags         Plans
// @Accept       json
// @Produce      json
// @Param        request body dto.PlanRequest true "Pool and limits"
// @Success      200 {object} dto.SuccessResponse{data=model.MealPlan} "Meal plan"
// @Failure      400 {object} dto.ErrorResponse "Invalid pool, limit, meal count, profile or catalog"
// @Failure      422 {object} dto.ErrorResponse "Pool could not be spread over a bounded number of days"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/plan/multi [post]
func (h *AllocationHandler) PlanMultiDay(c *gin.Context) {
	h.plan(c, true)
}

func (h *AllocationHandler) plan(c *gin.Context, forceMultiDay bool) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.PlanRequest](c)
	if err != nil {
		builder.RequestError(err)
		return
	}

	allocReq, err := NewAllocationRequest(c.Request.Context(), h.catalog, req, h.mealsPerDay)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	allocReq.ForceMultiDay = forceMultiDay

	plan, err := h.engine.Allocate(allocReq)
	if err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionAllocatePlan, "Plan allocation failed", err, map[string]interface{}{
			"items":     len(allocReq.Items),
			"daily_cap": allocReq.DailyCap,
		})
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionAllocatePlan, "Plan allocated", map[string]interface{}{
		"mode":              string(plan.Mode),
		"days":              plan.DayCount(),
		"items":             len(allocReq.Items),
		"total_kcal":        plan.TotalKcal,
		"density_fallbacks": plan.DensityFallbacks,
		"catalog_version":   plan.CatalogVersion,
	})
	builder.SuccessWithMessage(http.StatusOK, plan, i18n.SuccessKeyPlanAllocated)
}

// NewAllocationRequest turns the DTO into an engine request. Profile values
// fill in a missing daily cap and meal count, then defaultMeals applies. A
// request catalog replaces the active one and makes the result uncacheable.
func NewAllocationRequest(ctx context.Context, catalog service.CatalogService, req *dto.PlanRequest, defaultMeals int) (service.AllocationRequest, error) {
	allocReq := service.AllocationRequest{
		Items:       dto.ToItems(req.Items),
		DailyCap:    req.DailyCap,
		ExcessCap:   req.ExcessCap,
		MealsPerDay: req.MealsPerDay,
	}

	if req.Profile != nil {
		targets, err := service.ProfileCalculator{}.Targets(req.Profile.ToModel())
		if err != nil {
			return allocReq, err
		}
		if allocReq.DailyCap == 0 {
			allocReq.DailyCap = float64(targets.DailyCalories)
		}
		if allocReq.MealsPerDay == 0 {
			allocReq.MealsPerDay = targets.MealsPerDay
		}
	}
	if allocReq.MealsPerDay == 0 {
		allocReq.MealsPerDay = defaultMeals
	}
	if req.ThresholdFactor != nil {
		allocReq.Policy = service.CapFactorPolicy{Factor: *req.ThresholdFactor}
	}

	if len(req.Catalog) > 0 {
		entries, err := service.ValidateCatalog(req.Catalog)
		if err != nil {
			return allocReq, err
		}
		allocReq.Resolver = catalog.NewResolver(entries)
		return allocReq, nil
	}

	snapshot, err := catalog.Active(ctx)
	if err != nil {
		return allocReq, err
	}
	allocReq.Resolver = snapshot.Resolver
	allocReq.CatalogVersion = snapshot.Version
	allocReq.Cacheable = true
	return allocReq, nil
}

// ResolveDensity handles POST /api/density/resolve requests.
//
// @Summary      Resolve product names
// @Description  Shows which catalog entry and calorie density each name resolves to: exact match, first substring match in catalog order, or the default density.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.ResolveRequest true "Product names"
// @Success      200 {object} dto.SuccessResponse{data=dto.ResolveResponse} "Resolutions"
// @Failure      400 {object} dto.ErrorResponse "Invalid request"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/density/resolve [post]
func (h *AllocationHandler) ResolveDensity(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ResolveRequest](c)
	if err != nil {
		builder.RequestError(err)
		return
	}

	snapshot, err := h.catalog.Active(c.Request.Context())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	resp := dto.ResolveResponse{
		CatalogVersion: snapshot.Version,
		Results:        make([]model.Resolution, len(req.Names)),
	}
	for i, name := range req.Names {
		resp.Results[i] = snapshot.Resolver.Lookup(name)
	}

	middleware.AuditLog(h.audit, c, middleware.ActionResolveDensity, "Densities resolved", map[string]interface{}{
		"names": len(req.Names),
	})
	builder.SuccessOK(resp)
}
