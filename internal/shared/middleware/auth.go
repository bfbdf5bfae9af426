package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hanameee/bloglist-backend/internal/shared/auth"
	"github.com/hanameee/bloglist-backend/internal/shared/response"
)

const accountIDKey = "accountID"

// Auth authenticates the bearer token on the request and stores the acting
// account id in the gin context. Requests without a valid token are
// rejected with 401 before the handler runs.
func Auth(guard *auth.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := auth.FromAuthorizationHeader(c.GetHeader("Authorization"))

		accountID, err := guard.Authenticate(raw)
		if err != nil {
			response.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		c.Set(accountIDKey, accountID)
		c.Next()
	}
}

// AccountID reads the authenticated account id set by Auth. ok is false on
// routes that never went through the middleware.
func AccountID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(accountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
