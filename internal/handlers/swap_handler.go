package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"skillswap-web/internal/coordinator"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

type SwapHdl interface {
	RequestSwap(c *gin.Context)
	AcceptRequest(c *gin.Context)
	RejectRequest(c *gin.Context)
	CompleteRequest(c *gin.Context)
	CancelRequest(c *gin.Context)
	SubmitRating(c *gin.Context)
}

type SwapHandler struct {
	sessionHandler
}

func NewSwapHandler(sessions SessionProvider) SwapHdl {
	return &SwapHandler{sessionHandler{Sessions: sessions}}
}

// RequestSwap sends a swap request on behalf of the signed-in member.
func (handler *SwapHandler) RequestSwap(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.RequestSwap(ctx, *utils.SanitizedPayload[schemas.SwapRequestForm](c))
	render(c, coord)
}

func (handler *SwapHandler) AcceptRequest(c *gin.Context) {
	handler.transition(c, (*coordinator.Coordinator).AcceptRequest)
}

func (handler *SwapHandler) RejectRequest(c *gin.Context) {
	handler.transition(c, (*coordinator.Coordinator).RejectRequest)
}

func (handler *SwapHandler) CompleteRequest(c *gin.Context) {
	handler.transition(c, (*coordinator.Coordinator).CompleteRequest)
}

func (handler *SwapHandler) CancelRequest(c *gin.Context) {
	handler.transition(c, (*coordinator.Coordinator).CancelRequest)
}

// SubmitRating rates a finished swap.
func (handler *SwapHandler) SubmitRating(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.SubmitRating(ctx, pathID(c, utils.SwapIdKey), *utils.SanitizedPayload[schemas.RatingRequest](c))
	render(c, coord)
}

func (handler *SwapHandler) transition(c *gin.Context, intent func(*coordinator.Coordinator, context.Context, schemas.ID) *schemas.AppError) {
	ctx, coord := handler.session(c)
	intent(coord, ctx, pathID(c, utils.SwapIdKey))
	render(c, coord)
}
