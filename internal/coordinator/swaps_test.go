package coordinator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"skillswap-web/internal/schemas"
)

const receivedSwaps = `{"results":[
	{"id":1,"status":"pending","from_user":{"id":3,"username":"alice"},"to_user":{"id":7,"username":"me"},"offered_skill":{"name":"Python"},"wanted_skill":{"name":"Go"}},
	{"id":2,"status":"completed","rated":false,"from_user":{"id":4,"username":"bob"},"to_user":{"id":7,"username":"me"},"offered_skill":"Guitar","wanted_skill":"Piano"}
]}`

func TestRequestsViewClassifiesReceivedRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(schemas.RoleUser, "7")
	f.api.On("Get", mock.Anything, pathSentSwaps, mock.Anything).Return(`[]`, nil).Once()
	f.api.On("Get", mock.Anything, pathReceivedSwaps, mock.Anything).Return(receivedSwaps, nil).Once()

	require.Nil(t, f.coord.Navigate(ctx, schemas.PageRequests))

	view := f.coord.View(ViewOptions{})
	require.NotNil(t, view.Requests)
	require.Len(t, view.Requests.Received, 2)
	assert.Empty(t, view.Requests.Sent)

	assert.Equal(t, schemas.ID("1"), view.Requests.Received[0].Request.ID)
	assert.Equal(t, []string{schemas.ActionAccept, schemas.ActionReject}, view.Requests.Received[0].Actions)
	assert.Equal(t, "Python", view.Requests.Received[0].Request.OfferedSkill)

	assert.Equal(t, schemas.ID("2"), view.Requests.Received[1].Request.ID)
	assert.Equal(t, []string{schemas.ActionRate}, view.Requests.Received[1].Actions)
	f.api.AssertExpectations(t)
}

func TestRequestActions(t *testing.T) {
	me := schemas.ID("7")
	other := schemas.ID("3")
	rated := true

	testCases := []struct {
		name    string
		from    schemas.ID
		to      schemas.ID
		status  schemas.SwapStatus
		rated   bool
		actions []string
	}{
		{"ReceivedPending", other, me, schemas.SwapPending, false, []string{schemas.ActionAccept, schemas.ActionReject}},
		{"ReceivedAccepted", other, me, schemas.SwapAccepted, false, []string{schemas.ActionComplete}},
		{"ReceivedCompleted", other, me, schemas.SwapCompleted, false, []string{schemas.ActionRate}},
		{"ReceivedCompletedRated", other, me, schemas.SwapCompleted, rated, []string{}},
		{"SentPending", me, other, schemas.SwapPending, false, []string{schemas.ActionCancel}},
		{"SentAccepted", me, other, schemas.SwapAccepted, false, []string{schemas.ActionRate}},
		{"SentRejected", me, other, schemas.SwapRejected, false, []string{}},
		{"NotAParty", other, other, schemas.SwapPending, false, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			swap := schemas.SwapRequest{
				ID:       "1",
				FromUser: schemas.User{ID: tc.from},
				ToUser:   schemas.User{ID: tc.to},
				Status:   tc.status,
				Rated:    tc.rated,
			}
			assert.Equal(t, tc.actions, requestActions(swap, me))
		})
	}
}

func TestRequestSwapRejectedLocally(t *testing.T) {
	testCases := []struct {
		name    string
		role    schemas.Role
		message string
	}{
		{"Guest", schemas.RoleGuest, schemas.MessageGuestSwapRequest},
		{"Admin", schemas.RoleAdmin, schemas.MessageAdminSwapRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			if tc.role != schemas.RoleGuest {
				f.signIn(tc.role, "1")
			}

			appErr := f.coord.RequestSwap(context.Background(), schemas.SwapRequestForm{
				TargetUserID: "3",
				OfferedSkill: "Go",
				WantedSkill:  "Python",
			})

			require.NotNil(t, appErr)
			assert.Equal(t, schemas.CodePermissionDenied, appErr.Code)
			notices := f.coord.DrainNotices()
			require.Len(t, notices, 1)
			assert.Equal(t, tc.message, notices[0].Description)
			f.api.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRequestSwap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(schemas.RoleUser, "7")
	f.coord.users = []schemas.User{member("3", "Alice Smith", schemas.RoleUser)}

	f.api.On("Post", mock.Anything, pathSwaps, schemas.SwapCreateBody{
		ToUserID:     int64(3),
		OfferedSkill: "Go",
		WantedSkill:  "Python",
		Message:      "Let's swap",
	}).Return(`{"id":10,"status":"pending"}`, nil).Once()
	f.api.On("Get", mock.Anything, pathSentSwaps, mock.Anything).Return(`[]`, nil).Once()
	f.api.On("Get", mock.Anything, pathReceivedSwaps, mock.Anything).Return(`[]`, nil).Once()

	appErr := f.coord.RequestSwap(ctx, schemas.SwapRequestForm{
		TargetUserID: "3",
		OfferedSkill: "Go",
		WantedSkill:  "Python",
		Message:      "Let's swap",
	})

	require.Nil(t, appErr)
	notices := f.coord.DrainNotices()
	require.Len(t, notices, 1)
	assert.Equal(t, "Request sent!", notices[0].Title)
	assert.Equal(t, "Your swap request has been sent to Alice Smith", notices[0].Description)
	f.api.AssertExpectations(t)
}

func TestSwapTransitions(t *testing.T) {
	received := schemas.SwapRequest{
		ID:       "1",
		FromUser: member("3", "Alice", schemas.RoleUser),
		ToUser:   member("7", "Me", schemas.RoleUser),
		Status:   schemas.SwapPending,
	}

	testCases := []struct {
		name   string
		intent func(c *Coordinator, ctx context.Context) *schemas.AppError
		status schemas.SwapStatus
		notice string
	}{
		{
			"Accept",
			func(c *Coordinator, ctx context.Context) *schemas.AppError { return c.AcceptRequest(ctx, "1") },
			schemas.SwapAccepted,
			"Request accepted!",
		},
		{
			"Reject",
			func(c *Coordinator, ctx context.Context) *schemas.AppError { return c.RejectRequest(ctx, "1") },
			schemas.SwapRejected,
			"Request declined",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.signIn(schemas.RoleUser, "7")
			f.coord.swaps = []schemas.SwapRequest{received}

			f.api.On("Patch", mock.Anything, "/swaps/1/", schemas.SwapStatusBody{Status: tc.status}).
				Return(`{}`, nil).Once()
			f.api.On("Get", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, &schemas.ResponseError{Method: "GET", Path: pathSentSwaps, Status: 503})

			require.Nil(t, tc.intent(f.coord, ctx))

			// The reload failed, so the local update is what remains.
			assert.Equal(t, tc.status, f.coord.swaps[0].Status)
			assert.Contains(t, noticeTitles(f.coord.DrainNotices()), tc.notice)
			f.api.AssertExpectations(t)
		})
	}
}

func TestSwapTransitionRefusedLocally(t *testing.T) {
	f := newFixture(t)
	f.signIn(schemas.RoleUser, "7")
	f.coord.swaps = []schemas.SwapRequest{{
		ID:       "1",
		FromUser: member("3", "Alice", schemas.RoleUser),
		ToUser:   member("7", "Me", schemas.RoleUser),
		Status:   schemas.SwapPending,
	}}

	appErr := f.coord.CompleteRequest(context.Background(), "1")
	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeValidationError, appErr.Code)

	appErr = f.coord.CancelRequest(context.Background(), "1")
	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeValidationError, appErr.Code)

	appErr = f.coord.AcceptRequest(context.Background(), "99")
	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeNotFound, appErr.Code)

	f.api.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func TestSwapTransitionFailureKeepsCollection(t *testing.T) {
	f := newFixture(t)
	f.signIn(schemas.RoleUser, "7")
	f.coord.swaps = []schemas.SwapRequest{{
		ID:       "1",
		FromUser: member("3", "Alice", schemas.RoleUser),
		ToUser:   member("7", "Me", schemas.RoleUser),
		Status:   schemas.SwapPending,
	}}
	f.api.On("Patch", mock.Anything, "/swaps/1/", mock.Anything).
		Return(nil, &schemas.ResponseError{Method: "PATCH", Path: "/swaps/1/", Status: 400, Body: []byte(`{"message":"Request already handled"}`)}).Once()

	appErr := f.coord.AcceptRequest(context.Background(), "1")

	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeValidationError, appErr.Code)
	assert.Equal(t, "Request already handled", appErr.Message)
	assert.Equal(t, schemas.SwapPending, f.coord.swaps[0].Status)
	f.api.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.signIn(schemas.RoleUser, "7")
	f.coord.swaps = []schemas.SwapRequest{{
		ID:       "2",
		FromUser: member("4", "Bob", schemas.RoleUser),
		ToUser:   member("7", "Me", schemas.RoleUser),
		Status:   schemas.SwapCompleted,
	}}

	f.api.On("Post", mock.Anything, pathRatings, schemas.RatingCreateBody{
		SwapRequestID: int64(2),
		Rating:        5,
		Feedback:      "Patient and clear",
	}).Return(`{"id":1}`, nil).Once()
	f.api.On("Get", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &schemas.ResponseError{Method: "GET", Path: pathSentSwaps, Status: 503})

	require.Nil(t, f.coord.SubmitRating(ctx, "2", schemas.RatingRequest{Score: 5, Feedback: "Patient and clear"}))

	assert.True(t, f.coord.swaps[0].Rated)
	require.NotNil(t, f.coord.swaps[0].Rating)
	assert.Equal(t, 5, *f.coord.swaps[0].Rating)
	assert.Contains(t, noticeTitles(f.coord.DrainNotices()), "Rating submitted!")

	appErr := f.coord.SubmitRating(ctx, "2", schemas.RatingRequest{Score: 4})
	require.NotNil(t, appErr)
	assert.Equal(t, schemas.CodeValidationError, appErr.Code)
	f.api.AssertNumberOfCalls(t, "Post", 1)
}
