package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

// Audit action types.
const (
	ActionAllocatePlan   = "allocate_plan"
	ActionResolveDensity = "resolve_density"
	ActionProfileTargets = "profile_targets"
	ActionUpdateCatalog  = "update_catalog"
)

// AuditLog records a user action such as a plan allocation or catalog update.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	sink.Log(auditEntry(c, "info", actionType, message, fields))
}

// AuditLogError records a failed user action.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		UserID:     GetUserID(c),
		ActionType: actionType,
		Fields:     fields,
	}
}
