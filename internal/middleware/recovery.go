package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/pkg/apperrors"
	"github.com/echoplay/server/pkg/httputil"
	"github.com/echoplay/server/pkg/logger"
)

// Recovery recovers from handler panics, logs the stack, and returns a
// 500 without leaking internals.
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					logger.String("request_id", httputil.GetRequestID(c)),
					logger.String("method", c.Request.Method),
					logger.String("path", c.Request.URL.Path),
					logger.String("panic", fmt.Sprintf("%v", r)),
					logger.String("stack", string(debug.Stack())),
				)
				httputil.Fail(c, apperrors.ErrInternal)
				c.Abort()
			}
		}()
		c.Next()
	}
}
