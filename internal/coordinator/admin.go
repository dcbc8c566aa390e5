package coordinator

import (
	"context"
	"encoding/json"
	"fmt"

	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// Report types the admin dashboard offers for download.
var ReportTypes = []string{"user_activity", "feedback_logs", "swap_stats"}

// LoadAdminData fills the admin dashboard. Unless force is set, a persisted
// snapshot younger than the cache TTL is served right away and refreshed in
// the background; an older or missing snapshot is reloaded before returning.
func (c *Coordinator) LoadAdminData(ctx context.Context, force bool) *schemas.AppError {
	if !Capabilities(c.role()).Allows(CapAdminViewAllUsers) {
		return nil
	}

	if !force {
		if cache, ok := c.storage.AdminCache(ctx); ok && c.cacheFresh(cache.Timestamp) {
			c.mu.Lock()
			c.admin = &adminState{
				dashboard:     cache.Dashboard,
				users:         nonNilUsers(cache.Users),
				swaps:         nonNilSwaps(cache.Swaps),
				notifications: nonNilNotifications(cache.Notifications),
				cachedAt:      cache.Timestamp,
			}
			c.mu.Unlock()

			background := context.WithoutCancel(ctx)
			c.spawn(func() {
				c.refreshAdmin(background, true)
			})
			return nil
		}
	}

	return c.refreshAdmin(ctx, false)
}

func (c *Coordinator) cacheFresh(timestamp int64) bool {
	age := c.now().UnixMilli() - timestamp
	return age >= 0 && age < c.adminCacheTTL.Milliseconds()
}

// refreshAdmin reloads every admin collection and persists the snapshot. A
// quiet refresh only logs its failures.
func (c *Coordinator) refreshAdmin(ctx context.Context, quiet bool) *schemas.AppError {
	const title = "Could not load admin data"

	gen := c.beginLoad(loadingAdmin)
	fetch := func(path string) ([]byte, *schemas.AppError) {
		op := func() ([]byte, error) { return c.api.Get(ctx, path, nil) }
		if quiet {
			return c.quietCall(ctx, "refreshAdmin", op)
		}
		return c.call(ctx, title, op)
	}
	fail := func(err error) *schemas.AppError {
		c.finishLoad(loadingAdmin, gen)
		if quiet {
			utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not decode admin data", err)
			return nil
		}
		return c.invalidResponse(ctx, title, err)
	}

	dashboard, appErr := fetch(pathAdminDashboard)
	if appErr != nil {
		c.finishLoad(loadingAdmin, gen)
		return appErr
	}
	if !json.Valid(dashboard) {
		return fail(fmt.Errorf("dashboard is not JSON"))
	}

	usersBody, appErr := fetch(pathAdminUsers)
	if appErr != nil {
		c.finishLoad(loadingAdmin, gen)
		return appErr
	}
	users, err := utils.NormalizeUsers(usersBody)
	if err != nil {
		return fail(err)
	}

	swapsBody, appErr := fetch(pathSwaps)
	if appErr != nil {
		c.finishLoad(loadingAdmin, gen)
		return appErr
	}
	swaps, err := utils.NormalizeSwapRequests(swapsBody)
	if err != nil {
		return fail(err)
	}

	notificationsBody, appErr := fetch(pathNotifications)
	if appErr != nil {
		c.finishLoad(loadingAdmin, gen)
		return appErr
	}
	notifications, err := utils.NormalizeNotifications(notificationsBody)
	if err != nil {
		return fail(err)
	}

	cache := schemas.AdminCache{
		Users:         users,
		Swaps:         swaps,
		Notifications: notifications,
		Dashboard:     schemas.AdminDashboard(dashboard),
		Timestamp:     c.now().UnixMilli(),
	}

	c.mu.Lock()
	latest := c.endLoad(loadingAdmin, gen)
	if latest {
		c.admin = &adminState{
			dashboard:     cache.Dashboard,
			users:         users,
			swaps:         swaps,
			notifications: notifications,
			cachedAt:      cache.Timestamp,
		}
	}
	c.mu.Unlock()

	if latest {
		if err := c.storage.SetAdminCache(ctx, cache); err != nil {
			utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not persist admin cache", err)
		}
	}
	return nil
}

// DeactivateUser switches a member's account off.
func (c *Coordinator) DeactivateUser(ctx context.Context, userID schemas.ID) *schemas.AppError {
	inactive := false
	return c.adminMutation(ctx, CapAdminUpdateUser, "Could not deactivate user",
		[2]string{"User deactivated", "The account has been deactivated."},
		func() ([]byte, error) {
			return c.api.Patch(ctx, adminUpdatePath(userID.String()), schemas.AdminUpdateRequest{IsActive: &inactive})
		},
		func(state *adminState) {
			if i := userIndex(state.users, userID); i >= 0 {
				state.users[i].IsActive = false
			}
		})
}

// BanUser bans a member from the platform.
func (c *Coordinator) BanUser(ctx context.Context, userID schemas.ID) *schemas.AppError {
	return c.adminMutation(ctx, CapAdminBanUser, "Could not ban user",
		[2]string{"User banned", "The user has been banned from the platform."},
		func() ([]byte, error) {
			return c.api.Post(ctx, banPath(userID.String()), nil)
		},
		func(state *adminState) {
			if i := userIndex(state.users, userID); i >= 0 {
				state.users[i].IsBanned = true
			}
		})
}

// UnbanUser lifts a member's ban.
func (c *Coordinator) UnbanUser(ctx context.Context, userID schemas.ID) *schemas.AppError {
	return c.adminMutation(ctx, CapAdminBanUser, "Could not unban user",
		[2]string{"User unbanned", "The user can use the platform again."},
		func() ([]byte, error) {
			return c.api.Post(ctx, unbanPath(userID.String()), nil)
		},
		func(state *adminState) {
			if i := userIndex(state.users, userID); i >= 0 {
				state.users[i].IsBanned = false
			}
		})
}

// ToggleUserVisibility flips whether a member's profile is listed publicly.
func (c *Coordinator) ToggleUserVisibility(ctx context.Context, userID schemas.ID) *schemas.AppError {
	const title = "Could not change visibility"

	c.mu.Lock()
	var target *schemas.User
	if c.admin != nil {
		target = findUser(c.admin.users, userID)
	}
	c.mu.Unlock()
	if target == nil {
		if !Capabilities(c.role()).Allows(CapAdminUpdateUser) {
			return c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
		}
		return c.reject(ctx, schemas.CodeNotFound, title, schemas.MessageNotFound)
	}

	public := !target.IsPublic
	description := "The profile is now hidden."
	if public {
		description = "The profile is now public."
	}
	return c.adminMutation(ctx, CapAdminUpdateUser, title,
		[2]string{"Visibility updated", description},
		func() ([]byte, error) {
			return c.api.Patch(ctx, adminUpdatePath(userID.String()), schemas.AdminUpdateRequest{IsPublic: &public})
		},
		func(state *adminState) {
			if i := userIndex(state.users, userID); i >= 0 {
				state.users[i].IsPublic = public
			}
		})
}

// RejectSkill removes an inappropriate skill from the catalogue.
func (c *Coordinator) RejectSkill(ctx context.Context, skillID schemas.ID) *schemas.AppError {
	return c.adminMutation(ctx, CapAdminRejectSkill, "Could not reject skill",
		[2]string{"Skill rejected", "The skill has been removed."},
		func() ([]byte, error) {
			return c.api.Post(ctx, rejectSkillPath(skillID.String()), nil)
		},
		nil)
}

// BroadcastMessage sends a notification to every member.
func (c *Coordinator) BroadcastMessage(ctx context.Context, req schemas.BroadcastRequest) *schemas.AppError {
	if req.Type == "" {
		req.Type = defaultBroadcastType
	}
	return c.adminMutation(ctx, CapAdminSendBroadcast, "Could not send message",
		[2]string{"Message sent!", "Your message has been broadcast to all users."},
		func() ([]byte, error) {
			return c.api.Post(ctx, pathBroadcast, req)
		},
		nil)
}

// DownloadReport fetches an admin report. The file name falls back to
// "<type>-report" when the backend suggests none.
func (c *Coordinator) DownloadReport(ctx context.Context, reportType string) (*schemas.Download, *schemas.AppError) {
	const title = "Could not download report"

	if !Capabilities(c.role()).Allows(CapAdminDownloadReports) {
		return nil, c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
	}
	if !containsString(ReportTypes, reportType) {
		return nil, c.reject(ctx, schemas.CodeValidationError, title, fmt.Sprintf("Unknown report type %q.", reportType))
	}

	c.setLoading(loadingAction, true)
	defer c.setLoading(loadingAction, false)

	download, appErr := utils.HandleAsyncOperation(func() (*schemas.Download, error) {
		return c.api.Download(ctx, reportPath(reportType))
	}, c.failureHandler(ctx, title))
	if appErr != nil {
		return nil, appErr
	}
	if download == nil {
		return nil, c.invalidResponse(ctx, title, fmt.Errorf("empty report"))
	}
	if download.FileName == "" {
		download.FileName = reportType + reportFileNameSuffix
	}

	c.notify("Report downloaded", fmt.Sprintf("%s is ready.", download.FileName))
	return download, nil
}

// adminMutation runs one admin action: apply updates the cached admin state on
// success, after which the persisted snapshot is dropped and reloaded.
func (c *Coordinator) adminMutation(ctx context.Context, capability Capability, title string, notice [2]string, op func() ([]byte, error), apply func(*adminState)) *schemas.AppError {
	if !Capabilities(c.role()).Allows(capability) {
		return c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
	}

	c.setLoading(loadingAction, true)
	defer c.setLoading(loadingAction, false)

	if _, appErr := c.call(ctx, title, op); appErr != nil {
		return appErr
	}

	c.mu.Lock()
	if apply != nil && c.admin != nil {
		apply(c.admin)
	}
	c.pushNotice(notice[0], notice[1], "")
	c.mu.Unlock()

	if err := c.storage.ClearAdminCache(ctx); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not invalidate admin cache", err)
	}
	c.LoadAdminData(ctx, true)
	return nil
}

func nonNilUsers(users []schemas.User) []schemas.User {
	if users == nil {
		return []schemas.User{}
	}
	return users
}

func nonNilSwaps(swaps []schemas.SwapRequest) []schemas.SwapRequest {
	if swaps == nil {
		return []schemas.SwapRequest{}
	}
	return swaps
}

func nonNilNotifications(notifications []schemas.Notification) []schemas.Notification {
	if notifications == nil {
		return []schemas.Notification{}
	}
	return notifications
}
