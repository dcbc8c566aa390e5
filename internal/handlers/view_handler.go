package handlers

import (
	"github.com/gin-gonic/gin"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

type ViewHdl interface {
	GetView(c *gin.Context)
	Navigate(c *gin.Context)
	SetFilters(c *gin.Context)
	ToggleDarkMode(c *gin.Context)
}

type ViewHandler struct {
	sessionHandler
}

func NewViewHandler(sessions SessionProvider) ViewHdl {
	return &ViewHandler{sessionHandler{Sessions: sessions}}
}

// GetView renders the browser session as it stands.
func (handler *ViewHandler) GetView(c *gin.Context) {
	_, coord := handler.session(c)
	render(c, coord)
}

// Navigate switches the page, subject to the role guard.
func (handler *ViewHandler) Navigate(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.Navigate(ctx, schemas.Page(utils.SanitizedPayload[schemas.NavigateRequest](c).Page))
	render(c, coord)
}

// SetFilters sets the home page search term and availability filter.
func (handler *ViewHandler) SetFilters(c *gin.Context) {
	_, coord := handler.session(c)
	filters := utils.SanitizedPayload[schemas.FilterRequest](c)
	coord.SetSearchTerm(filters.SearchTerm)
	coord.SetAvailabilityFilter(filters.Availability)
	render(c, coord)
}

func (handler *ViewHandler) ToggleDarkMode(c *gin.Context) {
	ctx, coord := handler.session(c)
	coord.ToggleDarkMode(ctx)
	render(c, coord)
}
