package coordinator

import (
	"strings"

	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// ViewOptions selects the window of the home directory to render.
type ViewOptions struct {
	Offset int
	Limit  int
}

// View renders a snapshot of the session state. Notices stay queued.
func (c *Coordinator) View(opts ViewOptions) schemas.ViewDTO {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render(opts)
}

// Render renders a snapshot of the session state and drains the notice queue
// and the last error in the same step, so each is delivered exactly once.
func (c *Coordinator) Render(opts ViewOptions) schemas.ViewDTO {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.render(opts)
	c.notices = nil
	c.lastError = nil
	c.scrollToTop = false
	return view
}

// DrainNotices returns and clears the queued notices.
func (c *Coordinator) DrainNotices() []schemas.NoticeDTO {
	c.mu.Lock()
	defer c.mu.Unlock()
	notices := c.notices
	c.notices = nil
	if notices == nil {
		return []schemas.NoticeDTO{}
	}
	return notices
}

// Page returns the page currently shown.
func (c *Coordinator) Page() schemas.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// render builds the view model. Caller holds mu.
func (c *Coordinator) render(opts ViewOptions) schemas.ViewDTO {
	loading := make(map[string]bool, len(c.loading))
	for key, value := range c.loading {
		loading[key] = value
	}
	notices := make([]schemas.NoticeDTO, len(c.notices))
	copy(notices, c.notices)

	view := schemas.ViewDTO{
		Page:        c.page,
		Header:      c.headerView(),
		Loading:     loading,
		LastError:   c.lastError,
		Notices:     notices,
		ScrollToTop: c.scrollToTop,
	}

	switch c.page {
	case schemas.PageHome:
		home := c.homeView(opts)
		view.Home = &home
	case schemas.PageRequests:
		requests := c.requestsView()
		view.Requests = &requests
	case schemas.PageProfile:
		profile := c.profileView()
		view.Profile = &profile
	case schemas.PageUserProfile:
		userProfile := c.userProfileView()
		view.UserProfile = &userProfile
	case schemas.PageAdmin:
		if c.admin != nil {
			admin := c.adminView()
			view.Admin = &admin
		}
	}
	return view
}

func (c *Coordinator) headerView() schemas.HeaderDTO {
	header := schemas.HeaderDTO{
		Role:               c.session.Role(),
		DarkMode:           c.darkMode,
		SearchTerm:         c.searchTerm,
		AvailabilityFilter: c.availabilityFilter,
		Notifications:      append([]schemas.Notification{}, c.notifications...),
	}
	if c.session != nil {
		user := c.session.User
		header.User = &user
	}
	header.UnreadNotifications = unreadCount(header.Notifications)
	return header
}

func (c *Coordinator) homeView(opts ViewOptions) schemas.HomeViewDTO {
	me := c.sessionID()
	canRequest := Capabilities(c.session.Role()).Allows(CapRequestSwap)

	matches := make([]schemas.User, 0, len(c.users))
	available := 0
	for _, user := range c.users {
		if !listedOnHome(user, me) {
			continue
		}
		if c.availabilityFilter != "" && c.availabilityFilter != "all" && string(user.Availability) != c.availabilityFilter {
			continue
		}
		if !matchesSearch(user, c.searchTerm) {
			continue
		}
		if user.Availability == schemas.AvailabilityAvailable {
			available++
		}
		matches = append(matches, user)
	}

	page, pagination := utils.Paginate(matches, opts.Offset, opts.Limit)
	cards := make([]schemas.UserCardDTO, 0, len(page))
	for _, user := range page {
		cards = append(cards, schemas.UserCardDTO{
			User:           user,
			LastActive:     user.DisplayLastActive(),
			CanRequestSwap: canRequest,
		})
	}

	return schemas.HomeViewDTO{
		Users:          cards,
		Matches:        len(matches),
		AvailableCount: available,
		Pagination:     pagination,
	}
}

// listedOnHome hides the viewer, admins and members with a private profile.
func listedOnHome(user schemas.User, me schemas.ID) bool {
	if me != "" && user.ID == me {
		return false
	}
	return user.Role != schemas.RoleAdmin && user.IsPublic
}

func matchesSearch(user schemas.User, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	fields := []string{user.Name, user.Username, user.Bio, user.Location}
	fields = append(fields, user.SkillsOffered...)
	fields = append(fields, user.SkillsWanted...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (c *Coordinator) requestsView() schemas.RequestsViewDTO {
	me := c.sessionID()
	view := schemas.RequestsViewDTO{
		Received: []schemas.RequestEntryDTO{},
		Sent:     []schemas.RequestEntryDTO{},
	}
	if me == "" {
		return view
	}

	for _, swap := range c.swaps {
		entry := schemas.RequestEntryDTO{Request: swap, Actions: requestActions(swap, me)}
		switch me {
		case swap.ToUser.ID:
			view.Received = append(view.Received, entry)
		case swap.FromUser.ID:
			view.Sent = append(view.Sent, entry)
		}
	}
	return view
}

func (c *Coordinator) profileView() schemas.ProfileViewDTO {
	view := schemas.ProfileViewDTO{
		Loading: c.loading[loadingProfile],
		Skills:  append([]string{}, c.skills...),
	}
	if c.session != nil {
		user := c.session.User
		view.User = &user
	}
	return view
}

func (c *Coordinator) userProfileView() schemas.UserProfileViewDTO {
	view := schemas.UserProfileViewDTO{LastActive: schemas.RecentlyActive}
	if c.viewedUser == nil {
		return view
	}

	user := *c.viewedUser
	view.User = &user
	view.LastActive = user.DisplayLastActive()
	view.CanRequestSwap = Capabilities(c.session.Role()).Allows(CapRequestSwap) && user.ID != c.sessionID()
	return view
}

func (c *Coordinator) adminView() schemas.AdminViewDTO {
	return schemas.AdminViewDTO{
		Dashboard:     c.admin.dashboard,
		Users:         append([]schemas.User{}, c.admin.users...),
		Swaps:         append([]schemas.SwapRequest{}, c.admin.swaps...),
		Notifications: append([]schemas.Notification{}, c.admin.notifications...),
		CachedAt:      c.admin.cachedAt,
	}
}
