package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/erp-suite/backend/internal/model"
	"github.com/erp-suite/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const authUserKey = "auth_user"

// AuthMiddleware rejects requests without a valid bearer token and attaches
// the token's identity to the request context. Every validation failure maps
// to the same 401 body; only the internal log tells them apart.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		user, err := authService.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

// RequireRoles gates a route on the token's role claims intersecting the
// required set. Runs after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetAuthUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if !user.HasAnyRole(roles...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

// RequestTimingMiddleware logs method, path, status and elapsed time for
// every request, warns when the slow threshold is exceeded, and exposes the
// duration in the X-Response-Time-Ms header.
func RequestTimingMiddleware(slowThreshold time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		elapsed := time.Since(start)
		elapsedMs := elapsed.Milliseconds()
		c.Header("X-Response-Time-Ms", strconv.FormatInt(elapsedMs, 10))

		log.Printf("Request %s %s completed in %dms with status %d (request_id=%s)",
			c.Request.Method, c.Request.URL.Path, elapsedMs, c.Writer.Status(), requestID)

		if elapsed > slowThreshold {
			log.Printf("Slow request detected: %s %s took %dms (threshold: %dms)",
				c.Request.Method, c.Request.URL.Path, elapsedMs, slowThreshold.Milliseconds())
		}
	}
}

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
