package coordinator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"skillswap-web/internal/schemas"
)

func unreadFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.signIn(schemas.RoleUser, "7")
	f.coord.notifications = []schemas.Notification{
		{ID: "1", Title: "New request"},
		{ID: "2", Title: "Accepted"},
	}
	return f
}

func TestMarkNotificationRead(t *testing.T) {
	f := unreadFixture(t)
	f.api.On("Patch", mock.Anything, "/notifications/2/", schemas.NotificationReadBody{IsRead: true}).Return(`{}`, nil).Once()

	require.Nil(t, f.coord.MarkNotificationRead(context.Background(), "2"))

	assert.Equal(t, 1, f.coord.View(ViewOptions{}).Header.UnreadNotifications)
	f.api.AssertExpectations(t)
}

func TestMarkNotificationReadFailureKeepsUnread(t *testing.T) {
	f := unreadFixture(t)
	f.api.On("Patch", mock.Anything, "/notifications/2/", mock.Anything).
		Return(nil, &schemas.ResponseError{Method: "PATCH", Path: "/notifications/2/", Status: 404}).Once()

	appErr := f.coord.MarkNotificationRead(context.Background(), "2")

	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeNotFound, appErr.Code)
	assert.Equal(t, 2, f.coord.View(ViewOptions{}).Header.UnreadNotifications)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	f := unreadFixture(t)
	f.api.On("Post", mock.Anything, pathMarkAllRead, nil).Return(`{}`, nil).Once()

	require.Nil(t, f.coord.MarkAllNotificationsRead(context.Background()))

	view := f.coord.Render(ViewOptions{})
	assert.Zero(t, view.Header.UnreadNotifications)
	assert.Equal(t, []string{"All caught up"}, noticeTitles(view.Notices))
	f.api.AssertExpectations(t)
}

func TestNotificationsNeedSession(t *testing.T) {
	f := newFixture(t)

	appErr := f.coord.MarkAllNotificationsRead(context.Background())

	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodePermissionDenied, appErr.Code)
	f.api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
}
