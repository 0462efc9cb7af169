package requestid

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the request id in both directions.
const Header = "X-Request-ID"

const contextKey = "request_id"

// Upstream proxies may forward their own ids; anything outside this shape is replaced.
var acceptedID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// Middleware assigns a request id, reusing a well-formed inbound one.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if !acceptedID.MatchString(id) {
			id = uuid.NewString()
			c.Request.Header.Set(Header, id)
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the request id stored on the gin context.
func Value(c *gin.Context) string {
	return c.GetString(contextKey)
}
