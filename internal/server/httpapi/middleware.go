package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/dmitrijs2005/localswap/internal/server/auth"
	"github.com/dmitrijs2005/localswap/internal/server/transport"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// bearerToken reads "Authorization: Bearer <token>". Browsers cannot set
// headers on EventSource requests, so an access_token query parameter is
// accepted as well.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return c.Query(common.AccessTokenHeaderName)
}

// AuthMiddleware rejects requests without a valid token and stores the
// caller's id in the gin and request contexts.
func (s *HTTPServer) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing token"})
			return
		}

		userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
		if err != nil {
			_, _, msg, _ := transport.Describe(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: msg})
			return
		}

		c.Set(userIDKey, userID)
		c.Request = c.Request.WithContext(transport.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// fail writes err as a JSON error response.
func (s *HTTPServer) fail(c *gin.Context, err error) {
	httpStatus, _, msg, field := transport.Describe(err)
	if httpStatus >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(httpStatus, api.ErrorResponse{Error: msg, Field: field})
}

// badRequest reports a malformed request body or query.
func (s *HTTPServer) badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
}
