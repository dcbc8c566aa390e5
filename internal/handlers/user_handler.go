package handlers

import (
	"github.com/gin-gonic/gin"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

type UserHdl interface {
	Login(c *gin.Context)
	Register(c *gin.Context)
	Logout(c *gin.Context)
	UpdateProfile(c *gin.Context)
	ViewProfile(c *gin.Context)
}

type UserHandler struct {
	sessionHandler
}

func NewUserHandler(sessions SessionProvider) UserHdl {
	return &UserHandler{sessionHandler{Sessions: sessions}}
}

// Login signs the browser session in.
func (handler *UserHandler) Login(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.Login(ctx, *utils.SanitizedPayload[schemas.LoginRequest](c))
	render(c, coord)
}

// Register creates an account and signs in when the backend allows it.
func (handler *UserHandler) Register(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.Register(ctx, *utils.SanitizedPayload[schemas.RegistrationRequest](c))
	render(c, coord)
}

// Logout ends the browser session's sign-in.
func (handler *UserHandler) Logout(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.Logout(ctx)
	render(c, coord)
}

// UpdateProfile saves the signed-in member's profile.
func (handler *UserHandler) UpdateProfile(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.UpdateProfile(ctx, *utils.SanitizedPayload[schemas.ProfileUpdateRequest](c))
	render(c, coord)
}

// ViewProfile opens another member's profile.
func (handler *UserHandler) ViewProfile(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.ViewProfile(ctx, pathID(c, utils.UserIdKey))
	render(c, coord)
}
