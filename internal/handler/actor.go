package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/campuslog/internal/moderation"
	"github.com/gin-gonic/gin"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"

	actorIDContextKey   = "__actor_id"
	actorRoleContextKey = "__actor_role"
)

// ActorRequired resolves the acting identity from the gateway headers.
// Authentication already happened upstream; this middleware only rejects
// requests that arrive without a resolved actor, authorization per
// transition stays in the state machine.
func ActorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := strings.TrimSpace(c.GetHeader(actorIDHeader))
		id, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil || id == 0 {
			respondError(c, http.StatusUnauthorized, "missing or invalid actor id")
			c.Abort()
			return
		}

		role := moderation.Role(strings.TrimSpace(c.GetHeader(actorRoleHeader)))
		if !role.Valid() {
			respondError(c, http.StatusUnauthorized, "missing or invalid actor role")
			c.Abort()
			return
		}

		c.Set(actorIDContextKey, uint(id))
		c.Set(actorRoleContextKey, role)
		c.Next()
	}
}

// AdminRequired gates endpoints only administrators may hit, such as the
// audit retention sweep.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, role := actorFrom(c); role != moderation.RoleAdmin {
			respondError(c, http.StatusForbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) (uint, moderation.Role) {
	id, _ := c.Get(actorIDContextKey)
	role, _ := c.Get(actorRoleContextKey)
	actorID, _ := id.(uint)
	actorRole, _ := role.(moderation.Role)
	return actorID, actorRole
}
