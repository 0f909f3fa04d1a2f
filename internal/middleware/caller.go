package middleware

import (
	"github.com/abczzz13/clientip"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

const callerIPKey = "caller_ip"

// NewCallerExtractor builds the extractor used for audit caller addresses.
// With trustProxy the app expects a reverse proxy on loopback that sets
// X-Forwarded-For; otherwise only RemoteAddr is consulted. metrics may be nil.
func NewCallerExtractor(trustProxy bool, metrics clientip.Metrics) (*clientip.Extractor, error) {
	opts := []clientip.Option{clientip.AllowPrivateIPs(true)}
	if trustProxy {
		opts = append(opts, clientip.PresetLoopbackReverseProxy())
	}
	if metrics != nil {
		opts = append(opts, clientip.WithMetrics(metrics))
	}
	return clientip.New(opts...)
}

// CallerAddressMiddleware resolves the caller address once per request. When
// the extractor refuses an address (loopback, reserved ranges) gin's remote
// IP is used instead, so audit records always carry something.
func CallerAddressMiddleware(extractor *clientip.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.RemoteIP()
		if extractor != nil {
			addr, err := extractor.ExtractAddr(c.Request)
			if err == nil {
				caller = addr.String()
			} else {
				log.Debug("Caller address extraction fell back to remote address", "error", err)
			}
		}
		c.Set(callerIPKey, caller)
		c.Next()
	}
}

func CallerIP(c *gin.Context) string {
	if ip := c.GetString(callerIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}
