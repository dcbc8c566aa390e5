package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skillswap-web/internal/schemas"
)

func TestNormalizeUser(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected schemas.User
	}{
		{
			"BackendDialect",
			`{"id": 7, "username": "jdoe", "first_name": "Jane", "last_name": "Doe", "skills_offered": [{"name": "Go"}, "Chess"],
			  "skills_wanted": [{"skill": {"name": "Piano"}}], "is_public": false, "total_swaps": 3, "rating": "4.50",
			  "is_active": true, "last_active": "2 hours ago"}`,
			schemas.User{
				ID:            "7",
				Name:          "Jane Doe",
				Username:      "jdoe",
				IsPublic:      false,
				SkillsOffered: []string{"Go", "Chess"},
				SkillsWanted:  []string{"Piano"},
				Rating:        4.5,
				TotalSwaps:    3,
				Badges:        []string{},
				Role:          schemas.RoleUser,
				IsActive:      true,
				LastActive:    "2 hours ago",
			},
		},
		{
			"LegacyDialect",
			`{"id": "u1", "name": "Sarah", "location": "Berlin", "bio": "Painter", "availability": "weekends",
			  "skillsOffered": ["Painting"], "skillsWanted": ["Guitar"], "isPublic": true, "totalSwaps": 12,
			  "rating": 4.8, "badges": ["Top Rated"], "lastActive": "1 day ago"}`,
			schemas.User{
				ID:            "u1",
				Name:          "Sarah",
				Location:      "Berlin",
				Bio:           "Painter",
				IsPublic:      true,
				Availability:  schemas.AvailabilityWeekends,
				SkillsOffered: []string{"Painting"},
				SkillsWanted:  []string{"Guitar"},
				Rating:        4.8,
				TotalSwaps:    12,
				Badges:        []string{"Top Rated"},
				Role:          schemas.RoleUser,
				IsActive:      true,
				LastActive:    "1 day ago",
			},
		},
		{
			"CamelCaseWinsOverSnakeCase",
			`{"id": 1, "name": "Max", "skillsOffered": ["Cooking"], "skills_offered": ["Baking"], "skills_wanted": ["Yoga"],
			  "isPublic": true, "is_public": false, "totalSwaps": 5, "total_swaps": 2}`,
			schemas.User{
				ID:            "1",
				Name:          "Max",
				IsPublic:      true,
				SkillsOffered: []string{"Cooking"},
				SkillsWanted:  []string{"Yoga"},
				TotalSwaps:    5,
				Badges:        []string{},
				Role:          schemas.RoleUser,
				IsActive:      true,
			},
		},
		{
			"StaffBecomesAdmin",
			`{"id": 2, "username": "root", "is_staff": true}`,
			schemas.User{
				ID:            "2",
				Name:          "root",
				Username:      "root",
				IsPublic:      true,
				SkillsOffered: []string{},
				SkillsWanted:  []string{},
				Badges:        []string{},
				Role:          schemas.RoleAdmin,
				IsActive:      true,
			},
		},
		{
			"EmptyObject",
			`{}`,
			schemas.User{
				Name:          "User",
				IsPublic:      true,
				SkillsOffered: []string{},
				SkillsWanted:  []string{},
				Badges:        []string{},
				Role:          schemas.RoleUser,
				IsActive:      true,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := NormalizeUserJSON([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, user)
		})
	}
}

func TestNormalizeUserNameFallback(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected string
	}{
		{"ExplicitName", `{"name": "Alice", "first_name": "Al", "username": "ali"}`, "Alice"},
		{"FullName", `{"full_name": "Alice Smith", "username": "ali"}`, "Alice Smith"},
		{"FirstOnly", `{"first_name": "Al", "username": "ali"}`, "Al"},
		{"LastOnly", `{"last_name": "Smith", "username": "ali"}`, "Smith"},
		{"Username", `{"username": "ali"}`, "ali"},
		{"BlankNames", `{"name": "  ", "first_name": "", "last_name": " "}`, "User"},
		{"Nothing", `{"id": 3}`, "User"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := NormalizeUserJSON([]byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, user.Name)
		})
	}
}

func TestNormalizeUserIsIdempotent(t *testing.T) {
	payloads := []string{
		`{"id": 7, "first_name": "Jane", "last_name": "Doe", "skills_offered": [{"name": "Go"}], "rating": "3.25", "is_superuser": true}`,
		`{"id": "u1", "name": "Sarah", "skillsOffered": ["Painting"], "isPublic": false, "isBanned": true, "availability": "busy"}`,
		`{}`,
	}

	for _, payload := range payloads {
		once, err := NormalizeUserJSON([]byte(payload))
		require.NoError(t, err)

		encoded, err := json.Marshal(once)
		require.NoError(t, err)

		twice, err := NormalizeUserJSON(encoded)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeUsersAcceptsEnvelope(t *testing.T) {
	bare, err := NormalizeUsers([]byte(`[{"id": 1, "name": "A"}, {"id": 2, "username": "b"}]`))
	require.NoError(t, err)

	paginated, err := NormalizeUsers([]byte(`{"count": 2, "results": [{"id": 1, "name": "A"}, {"id": 2, "username": "b"}]}`))
	require.NoError(t, err)

	assert.Len(t, bare, 2)
	assert.Equal(t, bare, paginated)

	empty, err := NormalizeUsers([]byte(`{"detail": "nothing here"}`))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = NormalizeUsers([]byte(`"oops"`))
	assert.Error(t, err)
}

func TestNormalizeSwapRequest(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		check   func(t *testing.T, swap schemas.SwapRequest)
	}{
		{
			"BackendDialect",
			`{"id": 11, "from_user": {"id": 1, "username": "a"}, "to_user": {"id": 2, "first_name": "Bo"},
			  "offered_skill": {"name": "Go"}, "wanted_skill": {"skill_name": "Rust"}, "message": "hi",
			  "status": "pending", "created_at": "2024-05-01"}`,
			func(t *testing.T, swap schemas.SwapRequest) {
				assert.Equal(t, schemas.ID("11"), swap.ID)
				assert.Equal(t, "a", swap.FromUser.Name)
				assert.Equal(t, "Bo", swap.ToUser.Name)
				assert.Equal(t, "Go", swap.OfferedSkill)
				assert.Equal(t, "Rust", swap.WantedSkill)
				assert.Equal(t, schemas.SwapPending, swap.Status)
				assert.Equal(t, "2024-05-01", swap.CreatedAt)
				assert.False(t, swap.Rated)
				assert.Nil(t, swap.Rating)
			},
		},
		{
			"RequesterAndTarget",
			`{"id": 12, "requester": {"id": 3}, "target": {"id": 4}, "offered_skill": "Chess", "wanted_skill": "Go", "status": "ACCEPTED"}`,
			func(t *testing.T, swap schemas.SwapRequest) {
				assert.Equal(t, schemas.ID("3"), swap.FromUser.ID)
				assert.Equal(t, schemas.ID("4"), swap.ToUser.ID)
				assert.Equal(t, "Chess", swap.OfferedSkill)
				assert.Equal(t, schemas.SwapAccepted, swap.Status)
			},
		},
		{
			"LegacyDialect",
			`{"id": "s1", "fromUser": {"id": "1", "name": "Sarah"}, "toUser": {"id": "2", "name": "Mike"},
			  "offeredSkill": "Painting", "wantedSkill": "Guitar", "status": "completed", "createdAt": "2024-01-01",
			  "rated": true, "rating": 5, "feedback": "great"}`,
			func(t *testing.T, swap schemas.SwapRequest) {
				assert.Equal(t, "Sarah", swap.FromUser.Name)
				assert.Equal(t, "Mike", swap.ToUser.Name)
				assert.Equal(t, "Painting", swap.OfferedSkill)
				assert.True(t, swap.Rated)
				require.NotNil(t, swap.Rating)
				assert.Equal(t, 5, *swap.Rating)
				assert.Equal(t, "great", swap.Feedback)
			},
		},
		{
			"MissingParties",
			`{"id": 13, "status": "pending"}`,
			func(t *testing.T, swap schemas.SwapRequest) {
				assert.Equal(t, "User", swap.FromUser.Name)
				assert.NotNil(t, swap.ToUser.SkillsOffered)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			swap, err := NormalizeSwapRequestJSON([]byte(tc.payload))
			require.NoError(t, err)
			tc.check(t, swap)

			encoded, err := json.Marshal(swap)
			require.NoError(t, err)
			again, err := NormalizeSwapRequestJSON(encoded)
			require.NoError(t, err)
			assert.Equal(t, swap, again)
		})
	}
}

func TestNormalizeNotifications(t *testing.T) {
	notifications, err := NormalizeNotifications([]byte(`{"results": [
		{"id": 1, "title": "New request", "message": "m", "created_at": "now", "is_read": false, "notification_type": "swap_request", "related_object_id": 9},
		{"id": "2", "title": "t", "message": "m", "time": "1h", "read": true, "type": "system"}
	]}`))
	require.NoError(t, err)
	require.Len(t, notifications, 2)

	assert.Equal(t, schemas.Notification{
		ID: "1", Title: "New request", Message: "m", Time: "now", Read: false, Type: "swap_request", RequestID: "9",
	}, notifications[0])
	assert.Equal(t, schemas.Notification{
		ID: "2", Title: "t", Message: "m", Time: "1h", Read: true, Type: "system",
	}, notifications[1])
}

func TestPayloadHasProfileFields(t *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected bool
	}{
		{"Complete", `{"first_name": "Ann", "skills_offered": [], "skills_wanted": ["Go"]}`, true},
		{"CamelCase", `{"name": "Ann", "skillsOffered": ["Go"], "skillsWanted": []}`, true},
		{"LoginResponseUser", `{"id": 1, "email": "a@b.c", "username": "ann"}`, false},
		{"MissingWanted", `{"name": "Ann", "skills_offered": ["Go"]}`, false},
		{"NullSkills", `{"name": "Ann", "skills_offered": null, "skills_wanted": null}`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var payload schemas.UserPayload
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &payload))
			assert.Equal(t, tc.expected, PayloadHasProfileFields(payload))
		})
	}
}
