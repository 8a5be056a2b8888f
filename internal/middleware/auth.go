package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/internal/domain"
	"github.com/echoplay/server/pkg/apperrors"
	"github.com/echoplay/server/pkg/auth"
	"github.com/echoplay/server/pkg/httputil"
	"github.com/echoplay/server/pkg/logger"
)

const principalKey = "principal"

// Auth validates the bearer token and stores the resulting principal in
// the context. Requests without a valid token are rejected.
func Auth(tokens *auth.Manager, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := principalFromHeader(c, tokens)
		if err != nil {
			log.Warn("token validation failed",
				logger.String("request_id", httputil.GetRequestID(c)),
				logger.Error(err))
			httputil.Fail(c, apperrors.ErrTokenInvalid)
			c.Abort()
			return
		}
		if p.Anonymous() {
			httputil.Fail(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		setPrincipal(c, p)
		c.Next()
	}
}

// OptionalAuth validates the bearer token when one is present, storing
// the principal; absent or malformed credentials leave the request
// anonymous rather than rejecting it.
func OptionalAuth(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, err := principalFromHeader(c, tokens); err == nil {
			setPrincipal(c, p)
		}
		c.Next()
	}
}

func principalFromHeader(c *gin.Context, tokens *auth.Manager) (domain.Principal, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return domain.Principal{}, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Principal{}, apperrors.ErrTokenInvalid
	}

	claims, err := tokens.ValidateToken(parts[1])
	if err != nil {
		return domain.Principal{}, err
	}
	return domain.Principal{ID: claims.UserID, Admin: claims.Admin}, nil
}

func setPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
	if p.ID != "" {
		c.Set("user_id", p.ID)
	}
}

// Principal returns the authenticated principal, or the anonymous zero
// value when the request carried no valid token.
func Principal(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}
