package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/models"
	"github.com/playmo/smartdns-api/internal/service"
)

const auditDataKey = "audit_data"

// AuditMiddleware hands one record per request to the audit logger after the
// handler has written its response. The write is detached from the request.
func AuditMiddleware(logService service.LogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		data, _ := c.Get(auditDataKey)
		logService.LogAPICall(models.LogEntry{
			Endpoint:  c.Request.URL.Path,
			Method:    c.Request.Method,
			Status:    c.Writer.Status(),
			Data:      data,
			IP:        CallerIP(c),
			RequestID: RequestID(c),
		})
	}
}

// SetAuditData attaches a payload snapshot to the request's audit record.
func SetAuditData(c *gin.Context, data interface{}) {
	c.Set(auditDataKey, data)
}
