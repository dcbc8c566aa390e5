package coordinator

import (
	"context"
	"fmt"
	"strings"

	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// Navigate switches to page if the session's role may see it. Admin sessions
// are held to the admin and login pages; other roles are redirected silently
// to the page their role may see.
func (c *Coordinator) Navigate(ctx context.Context, page schemas.Page) *schemas.AppError {
	if !knownPage(page) {
		return c.reject(ctx, schemas.CodeValidationError, "Page not found", fmt.Sprintf("Unknown page %q.", page))
	}

	c.mu.Lock()
	resolved, restricted := pageAccess(c.session.Role(), page)
	if restricted {
		c.mu.Unlock()
		return c.reject(ctx, schemas.CodeRoleRestricted, "Access Restricted", schemas.MessageAdminRestricted)
	}
	if resolved != page {
		utils.LogMessageWithFields(ctx, "debug", fmt.Sprintf("Redirecting %s to %s", page, resolved))
	}
	c.page = resolved
	c.scrollToTop = true
	c.mu.Unlock()

	c.onEnter(ctx, resolved)
	return nil
}

// onEnter triggers the loads a page needs when it is shown.
func (c *Coordinator) onEnter(ctx context.Context, page schemas.Page) {
	switch page {
	case schemas.PageProfile:
		c.EnsureProfileLoaded(ctx)
		c.LoadSkills(ctx)
	case schemas.PageRequests:
		c.LoadSwapRequests(ctx)
	case schemas.PageAdmin:
		c.LoadAdminData(ctx, false)
	}
}

// ViewProfile shows another member's profile. Members outside the cached
// directory are fetched individually.
func (c *Coordinator) ViewProfile(ctx context.Context, userID schemas.ID) *schemas.AppError {
	const title = "Could not load profile"

	c.mu.Lock()
	if _, restricted := pageAccess(c.session.Role(), schemas.PageUserProfile); restricted {
		c.mu.Unlock()
		return c.reject(ctx, schemas.CodeRoleRestricted, "Access Restricted", schemas.MessageAdminRestricted)
	}
	cached := findUser(c.users, userID)
	c.mu.Unlock()

	if cached == nil {
		body, appErr := c.call(ctx, title, func() ([]byte, error) {
			return c.api.Get(ctx, userPath(userID.String()), nil)
		})
		if appErr != nil {
			return appErr
		}
		user, _, err := c.decodeUser(body)
		if err != nil {
			return c.invalidResponse(ctx, title, err)
		}
		cached = &user
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewedUserID = userID
	c.viewedUser = cached
	c.page = schemas.PageUserProfile
	c.scrollToTop = true
	return nil
}

// SetSearchTerm sets the home page search.
func (c *Coordinator) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = strings.TrimSpace(term)
}

// SetAvailabilityFilter sets the home page availability filter; "all" or an
// empty value disables it.
func (c *Coordinator) SetAvailabilityFilter(filter string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if filter == "" {
		filter = "all"
	}
	c.availabilityFilter = filter
}

// ToggleDarkMode flips and persists the dark-mode preference.
func (c *Coordinator) ToggleDarkMode(ctx context.Context) bool {
	c.mu.Lock()
	c.darkMode = !c.darkMode
	enabled := c.darkMode
	c.mu.Unlock()

	if err := c.storage.SetDarkMode(ctx, enabled); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not persist dark mode", err)
	}
	return enabled
}

func findUser(users []schemas.User, id schemas.ID) *schemas.User {
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user
		}
	}
	return nil
}
