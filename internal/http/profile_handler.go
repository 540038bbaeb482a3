package http

import (
	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/middleware"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

// ProfileHandler derives daily targets from a body profile.
type ProfileHandler struct {
	calculator service.ProfileCalculator
	audit      middleware.LogSink
}

// NewProfileHandler creates a new ProfileHandler instance.
func NewProfileHandler(audit middleware.LogSink) *ProfileHandler {
	return &ProfileHandler{audit: audit}
}

// Targets handles POST /api/profile/targets requests.
//
// @Summary      Compute daily targets
// @Description  Mifflin-St Jeor BMR times the activity factor, adjusted for the goal and truncated to whole kcal, plus macronutrient grams and the meal count for the goal. daily_cap can be passed straight to /api/plan.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body dto.ProfileRequest true "Body profile"
// @Success      200 {object} dto.SuccessResponse{data=dto.ProfileTargetsResponse} "Daily targets"
// @Failure      400 {object} dto.ErrorResponse "Invalid profile"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/profile/targets [post]
func (h *ProfileHandler) Targets(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.ProfileRequest](c)
	if err != nil {
		builder.RequestError(err)
		return
	}

	targets, err := h.calculator.Targets(req.ToModel())
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.audit, c, middleware.ActionProfileTargets, "Profile targets computed", map[string]interface{}{
		"goal":           req.Goal,
		"daily_calories": targets.DailyCalories,
	})
	builder.SuccessOK(dto.ProfileTargetsResponse{
		Targets:  targets,
		DailyCap: float64(targets.DailyCalories),
	})
}
