package coordinator

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"skillswap-web/internal/schemas"
)

const adminUsers = `[{"id":3,"username":"alice","is_public":true,"is_banned":false},{"id":4,"username":"bob","is_public":false,"is_banned":true}]`

func (f *fixture) expectAdminReload() {
	f.api.On("Get", mock.Anything, pathAdminDashboard, mock.Anything).Return(`{"total_users":2}`, nil).Once()
	f.api.On("Get", mock.Anything, pathAdminUsers, mock.Anything).Return(adminUsers, nil).Once()
	f.api.On("Get", mock.Anything, pathSwaps, mock.Anything).Return(`{"results":[]}`, nil).Once()
	f.api.On("Get", mock.Anything, pathNotifications, mock.Anything).Return(`[]`, nil).Once()
}

func (f *fixture) seedAdminCache(t *testing.T, at time.Time) {
	t.Helper()
	require.NoError(t, f.storage.SetAdminCache(context.Background(), schemas.AdminCache{
		Users:     []schemas.User{member("3", "Cached Alice", schemas.RoleUser)},
		Dashboard: json.RawMessage(`{"total_users":1}`),
		Timestamp: at.UnixMilli(),
	}))
}

func TestAdminCacheServedWhileFresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	written := f.clock
	f.signIn(schemas.RoleAdmin, "1")
	f.seedAdminCache(t, written)
	f.setClock(written.Add(4 * time.Minute))

	require.Nil(t, f.coord.LoadAdminData(ctx, false))

	view := f.coord.View(ViewOptions{})
	require.NotNil(t, view.Admin)
	assert.Equal(t, written.UnixMilli(), view.Admin.CachedAt)
	require.Len(t, view.Admin.Users, 1)
	assert.Equal(t, "Cached Alice", view.Admin.Users[0].Name)
	f.api.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)

	require.Len(t, f.spawned, 1)
	f.expectAdminReload()
	f.spawned[0]()

	view = f.coord.View(ViewOptions{})
	assert.Equal(t, written.Add(4*time.Minute).UnixMilli(), view.Admin.CachedAt)
	assert.Len(t, view.Admin.Users, 2)
	cache, ok := f.storage.AdminCache(ctx)
	require.True(t, ok)
	assert.Equal(t, written.Add(4*time.Minute).UnixMilli(), cache.Timestamp)
	assert.Empty(t, view.Notices)
	f.api.AssertExpectations(t)
}

func TestAdminCacheReloadedWhenStale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	written := f.clock
	f.signIn(schemas.RoleAdmin, "1")
	f.seedAdminCache(t, written)
	f.setClock(written.Add(6 * time.Minute))
	f.expectAdminReload()

	require.Nil(t, f.coord.LoadAdminData(ctx, false))

	assert.Empty(t, f.spawned)
	view := f.coord.View(ViewOptions{})
	require.NotNil(t, view.Admin)
	assert.Equal(t, written.Add(6*time.Minute).UnixMilli(), view.Admin.CachedAt)
	require.Len(t, view.Admin.Users, 2)
	assert.True(t, view.Admin.Users[1].IsBanned)
	assert.JSONEq(t, `{"total_users":2}`, string(view.Admin.Dashboard))
	f.api.AssertExpectations(t)
}

func TestAdminDataIgnoredForMembers(t *testing.T) {
	f := newFixture(t)
	f.signIn(schemas.RoleUser, "7")

	assert.Nil(t, f.coord.LoadAdminData(context.Background(), true))
	f.api.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminMutationsInvalidateCache(t *testing.T) {
	testCases := []struct {
		name   string
		expect func(f *fixture)
		intent func(c *Coordinator, ctx context.Context) *schemas.AppError
		notice string
	}{
		{
			"Ban",
			func(f *fixture) {
				f.api.On("Post", mock.Anything, "/users/3/ban/", nil).Return(`{}`, nil).Once()
			},
			func(c *Coordinator, ctx context.Context) *schemas.AppError { return c.BanUser(ctx, "3") },
			"User banned",
		},
		{
			"Unban",
			func(f *fixture) {
				f.api.On("Post", mock.Anything, "/users/4/unban/", nil).Return(`{}`, nil).Once()
			},
			func(c *Coordinator, ctx context.Context) *schemas.AppError { return c.UnbanUser(ctx, "4") },
			"User unbanned",
		},
		{
			"Deactivate",
			func(f *fixture) {
				f.api.On("Patch", mock.Anything, "/users/3/admin_update/", mock.MatchedBy(func(body schemas.AdminUpdateRequest) bool {
					return body.IsActive != nil && !*body.IsActive && body.IsPublic == nil
				})).Return(`{}`, nil).Once()
			},
			func(c *Coordinator, ctx context.Context) *schemas.AppError { return c.DeactivateUser(ctx, "3") },
			"User deactivated",
		},
		{
			"RejectSkill",
			func(f *fixture) {
				f.api.On("Post", mock.Anything, "/skills/12/reject/", nil).Return(`{}`, nil).Once()
			},
			func(c *Coordinator, ctx context.Context) *schemas.AppError { return c.RejectSkill(ctx, "12") },
			"Skill rejected",
		},
		{
			"Broadcast",
			func(f *fixture) {
				f.api.On("Post", mock.Anything, pathBroadcast, schemas.BroadcastRequest{
					Title:   "Maintenance",
					Message: "Back soon",
					Type:    defaultBroadcastType,
				}).Return(`{}`, nil).Once()
			},
			func(c *Coordinator, ctx context.Context) *schemas.AppError {
				return c.BroadcastMessage(ctx, schemas.BroadcastRequest{Title: "Maintenance", Message: "Back soon"})
			},
			"Message sent!",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.signIn(schemas.RoleAdmin, "1")
			f.seedAdminCache(t, f.clock)
			tc.expect(f)
			// The forced reload fails, so the invalidated cache stays empty.
			f.api.On("Get", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, &schemas.ResponseError{Method: "GET", Path: pathAdminDashboard, Status: 500})

			require.Nil(t, tc.intent(f.coord, ctx))

			_, ok := f.storage.AdminCache(ctx)
			assert.False(t, ok)
			f.api.AssertCalled(t, "Get", mock.Anything, pathAdminDashboard, mock.Anything)
			assert.Contains(t, noticeTitles(f.coord.DrainNotices()), tc.notice)
			assert.Empty(t, f.spawned)
		})
	}
}

func TestToggleUserVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(schemas.RoleAdmin, "1")
	f.expectAdminReload()
	require.Nil(t, f.coord.LoadAdminData(ctx, true))

	f.api.On("Patch", mock.Anything, "/users/3/admin_update/", mock.MatchedBy(func(body schemas.AdminUpdateRequest) bool {
		return body.IsPublic != nil && !*body.IsPublic && body.IsActive == nil
	})).Return(`{}`, nil).Once()
	f.expectAdminReload()

	require.Nil(t, f.coord.ToggleUserVisibility(ctx, "3"))

	appErr := f.coord.ToggleUserVisibility(ctx, "99")
	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeNotFound, appErr.Code)
	f.api.AssertExpectations(t)
}

func TestAdminActionsNeedAdminRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(schemas.RoleUser, "7")

	for _, appErr := range []*schemas.AppError{
		f.coord.BanUser(ctx, "3"),
		f.coord.UnbanUser(ctx, "3"),
		f.coord.DeactivateUser(ctx, "3"),
		f.coord.ToggleUserVisibility(ctx, "3"),
		f.coord.RejectSkill(ctx, "1"),
		f.coord.BroadcastMessage(ctx, schemas.BroadcastRequest{Title: "x", Message: "y"}),
	} {
		require.NotNil(t, appErr)
		assert.Equal(t, schemas.CodePermissionDenied, appErr.Code)
	}
	_, appErr := f.coord.DownloadReport(ctx, "swap_stats")
	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodePermissionDenied, appErr.Code)

	f.api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	f.api.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
	f.api.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}

func TestDownloadReport(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		expected string
	}{
		{"BackendFileName", "swap_stats_report.csv", "swap_stats_report.csv"},
		{"FallbackFileName", "", "swap_stats-report"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.signIn(schemas.RoleAdmin, "1")
			f.api.On("Download", mock.Anything, "/admin/reports/swap_stats/").Return(&schemas.Download{
				ContentType: "text/csv",
				FileName:    tc.fileName,
				Data:        []byte("Total Swaps,Completed\n10,7\n"),
			}, nil).Once()

			download, appErr := f.coord.DownloadReport(context.Background(), "swap_stats")

			require.Nil(t, appErr)
			assert.Equal(t, tc.expected, download.FileName)
			assert.Equal(t, "text/csv", download.ContentType)
			f.api.AssertExpectations(t)
		})
	}
}

func TestDownloadReportUnknownType(t *testing.T) {
	f := newFixture(t)
	f.signIn(schemas.RoleAdmin, "1")

	_, appErr := f.coord.DownloadReport(context.Background(), "passwords")

	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeValidationError, appErr.Code)
	f.api.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}
