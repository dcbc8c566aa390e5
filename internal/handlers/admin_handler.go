package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

type AdminHdl interface {
	DeactivateUser(c *gin.Context)
	BanUser(c *gin.Context)
	UnbanUser(c *gin.Context)
	ToggleVisibility(c *gin.Context)
	RejectSkill(c *gin.Context)
	Broadcast(c *gin.Context)
	DownloadReport(c *gin.Context)
	Refresh(c *gin.Context)
}

type AdminHandler struct {
	sessionHandler
}

func NewAdminHandler(sessions SessionProvider) AdminHdl {
	return &AdminHandler{sessionHandler{Sessions: sessions}}
}

func (handler *AdminHandler) DeactivateUser(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.DeactivateUser(ctx, pathID(c, utils.UserIdKey))
	render(c, coord)
}

func (handler *AdminHandler) BanUser(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.BanUser(ctx, pathID(c, utils.UserIdKey))
	render(c, coord)
}

func (handler *AdminHandler) UnbanUser(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.UnbanUser(ctx, pathID(c, utils.UserIdKey))
	render(c, coord)
}

func (handler *AdminHandler) ToggleVisibility(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.ToggleUserVisibility(ctx, pathID(c, utils.UserIdKey))
	render(c, coord)
}

func (handler *AdminHandler) RejectSkill(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.RejectSkill(ctx, pathID(c, utils.SkillIdKey))
	render(c, coord)
}

// Broadcast sends a platform-wide message.
func (handler *AdminHandler) Broadcast(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.BroadcastMessage(ctx, *utils.SanitizedPayload[schemas.BroadcastRequest](c))
	render(c, coord)
}

// DownloadReport streams an admin report as an attachment. Unlike the intents,
// a failure is answered with the error envelope; its notice stays queued for the
// next view.
func (handler *AdminHandler) DownloadReport(c *gin.Context) {
	ctx, coord := handler.session(c)
	download, appErr := coord.DownloadReport(ctx, c.Param(utils.ReportTypeKey))
	if appErr != nil {
		utils.WriteAndLogError(c, appErr, statusFor(appErr), nil)
		return
	}

	contentType := download.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	// The router defaults every response to JSON.
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.FileName))
	c.Data(http.StatusOK, contentType, download.Data)
}

// Refresh reloads the admin dashboard, bypassing the cached snapshot.
func (handler *AdminHandler) Refresh(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.LoadAdminData(ctx, true)
	render(c, coord)
}
