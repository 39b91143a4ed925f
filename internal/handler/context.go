package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"innoreg/internal/service"
)

// ActorContextKey is where middleware can place a database-verified actor.
// Admin routes use it so a stale role claim in an old token cannot grant
// moderation rights.
const ActorContextKey = "actor"

// ActorFromContext resolves the acting user for a request. A verified actor
// set by middleware wins over the token claims. The JWT middleware stores a
// golang-jwt/v5 token, so claims are read as a plain map here.
func ActorFromContext(c echo.Context) (service.Actor, bool) {
	if actor, ok := c.Get(ActorContextKey).(service.Actor); ok {
		return actor, true
	}

	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return service.Actor{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return service.Actor{}, false
	}

	idStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return service.Actor{}, false
	}
	role, _ := claims["role"].(string)
	return service.Actor{ID: userID, Role: role}, true
}
