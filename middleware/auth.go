package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"mentorhub/utils"
)

// bearerToken pulls the raw token out of the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// authenticate validates the token, enforces the expected role, and verifies
// the token hash against the auth cache so revoked tokens stop working before
// they expire. A missing cache entry is treated as a first sighting and the
// hash is cached for subsequent requests.
func authenticate(c *gin.Context, expectedRole, contextKey string) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return
	}

	subject, role, err := utils.ExtractIDFromToken(tokenString)
	if err != nil || subject == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return
	}
	if role != expectedRole {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden for this role", "code": 0})
		return
	}

	computedHash := utils.HashToken(tokenString)
	cacheKey := utils.AuthCachePrefix + expectedRole + ":" + subject
	ctx := context.Background()

	authCache := utils.GetAuthCacheClient()
	cachedHash, err := authCache.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		if cachedHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch", "code": 0})
			return
		}
		_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
	case err == redis.Nil:
		if err := authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err(); err != nil {
			zap.L().Warn("failed to cache auth token hash", zap.Error(err))
		}
	default:
		zap.L().Warn("auth cache lookup failed, accepting validated token", zap.Error(err))
	}

	c.Set(contextKey, subject)
	c.Next()
}

// JWTAuthUserMiddleware guards consumer endpoints and sets "userID" on the context.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, "user", "userID")
	}
}

// JWTAuthProviderMiddleware guards provider endpoints and sets "providerID" on the context.
func JWTAuthProviderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, "provider", "providerID")
	}
}
