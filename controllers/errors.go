package controllers

import (
	"errors"
	"strconv"

	"github.com/Edmundtutu/foody-sub002/pkg/resp"
	"github.com/Edmundtutu/foody-sub002/services"
	"github.com/Edmundtutu/foody-sub002/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{UserID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var ve services.ValidationErrors
	switch {
	case errors.As(err, &ve):
		resp.Validation(c, ve.Fields())
	case errors.Is(err, services.ErrUnauthenticated):
		resp.Unauthorized(c, "login required")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		resp.ServerError(c)
	}
}
