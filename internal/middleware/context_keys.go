package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the acting user's identifier in contexts.
const actorKey = contextKey("actor")

// defaultActor stamps audit fields when no X-Actor header accompanies a request.
const defaultActor = "system"

// ActorMiddleware records who is making the request for audit stamping. The
// identifier comes from the X-Actor header; there is no authentication layer
// in front of this service, the bookkeeper's identity is declarative.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader("X-Actor")
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorKey), actor)
		ctx := context.WithValue(c.Request.Context(), actorKey, actor)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user's identifier from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	actorVal, exists := c.Get(string(actorKey))
	if !exists {
		actorVal = c.Request.Context().Value(actorKey)
		if actorVal == nil {
			return defaultActor
		}
	}
	actor, ok := actorVal.(string)
	if !ok || actor == "" {
		return defaultActor
	}
	return actor
}
