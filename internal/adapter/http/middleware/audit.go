package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"commercial-paper-verifier/internal/core/domain"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware for successful verify calls and
// verdict lookups. Routes are matched on their registered pattern.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}

		action := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		resourceID := c.GetString(CtxResourceID)
		if resourceID == "" && action == domain.AuditActionVerdictLookup {
			resourceID = c.Param("id")
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(response.RequestIDKey),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:         uuid.New(),
			ClientID:   c.GetString(CtxClientID),
			Action:     action,
			ResourceID: resourceID,
			IPAddress:  c.ClientIP(),
			Details:    string(details),
			CreatedAt:  time.Now().UTC(),
		})
	}
}

func mapRouteToAction(route, method string) domain.AuditAction {
	switch {
	case route == "/api/v1/transactions/verify" && method == http.MethodPost:
		return domain.AuditActionVerify
	case route == "/api/v1/verdicts/:id" && method == http.MethodGet:
		return domain.AuditActionVerdictLookup
	}
	return ""
}
