package http

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway in front of this service.
// The service trusts them; authenticating the user is the gateway's job.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// actorFromRequest builds the acting user from the identity headers.
func actorFromRequest(ctx echo.Context) (user.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
	if err != nil {
		return user.Actor{}, err
	}

	role, err := user.RoleFromString(ctx.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return user.Actor{}, err
	}

	return user.NewActor(id, role)
}
