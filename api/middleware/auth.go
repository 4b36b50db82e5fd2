package middleware

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/auth"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
)

// Context keys set by the auth middlewares.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// RequireAuth verifies the Bearer token and aborts with 401 when it is
// missing or invalid. The authenticated user's ObjectID lands in the
// gin context under CtxUserID.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		sub, role, err := jwtManager.Parse(token)
		if err != nil {
			logger.Log.Warnf("token parse error: %v", err)
			auth.AbortWithUnauthorized(c, err)
			return
		}

		userID, err := primitive.ObjectIDFromHex(sub)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// OptionalAuth resolves the viewer identity when a valid token is
// present and lets anonymous requests through untouched. Feed reads use
// this: personalization needs identity, the endpoint does not.
func OptionalAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		sub, role, err := jwtManager.Parse(token)
		if err != nil {
			// A bad token on an optional endpoint degrades to anonymous
			// instead of blocking the read.
			logger.Log.Warnf("optional auth token rejected: %v", err)
			c.Next()
			return
		}

		if userID, err := primitive.ObjectIDFromHex(sub); err == nil {
			c.Set(CtxUserID, userID)
			c.Set(CtxRole, role)
		}
		c.Next()
	}
}

// CurrentUserID reads the authenticated user's ObjectID from the gin
// context. ok is false for anonymous requests.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}
