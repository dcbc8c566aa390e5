package handlers

import (
	"github.com/gin-gonic/gin"
	"skillswap-web/internal/utils"
)

type NotificationHdl interface {
	MarkRead(c *gin.Context)
	MarkAllRead(c *gin.Context)
}

type NotificationHandler struct {
	sessionHandler
}

func NewNotificationHandler(sessions SessionProvider) NotificationHdl {
	return &NotificationHandler{sessionHandler{Sessions: sessions}}
}

func (handler *NotificationHandler) MarkRead(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.MarkNotificationRead(ctx, pathID(c, utils.NotificationIdKey))
	render(c, coord)
}

func (handler *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.MarkAllNotificationsRead(ctx)
	render(c, coord)
}
