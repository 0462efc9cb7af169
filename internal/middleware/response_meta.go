package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/learningpath-api/pkg/middleware/requestid"
)

const (
	startedAtKey = "learningpath.started_at"
	cacheHitKey  = "learningpath.cache_hit"
)

// WithResponseMeta stamps the request start so envelopes can report processing time.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(startedAtKey, time.Now())
		c.Next()
	}
}

// SetCacheHit records whether the response was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	c.Set(cacheHitKey, hit)
}

// ExtractMeta builds the envelope meta block for the current request.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	meta := make(map[string]interface{}, 3)
	if started, ok := c.Get(startedAtKey); ok {
		if at, ok := started.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(at).Milliseconds()
		}
	}
	if hit, ok := c.Get(cacheHitKey); ok {
		meta["cache_hit"] = hit
	}
	if id := requestid.Value(c); id != "" {
		meta["request_id"] = id
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
