package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skillswap-web/internal/schemas"
)

func directory() []schemas.User {
	alice := member("1", "Alice Smith", schemas.RoleUser)
	alice.Availability = schemas.AvailabilityWeekends
	alice.SkillsOffered = []string{"Python"}
	alice.SkillsWanted = []string{"Guitar"}

	bob := member("2", "Bob Jones", schemas.RoleUser)
	bob.Availability = schemas.AvailabilityAvailable
	bob.SkillsOffered = []string{"Guitar"}
	bob.Location = "Berlin"

	carol := member("3", "Carol White", schemas.RoleUser)
	carol.Availability = schemas.AvailabilityAvailable
	carol.Bio = "Loves photography"

	hidden := member("4", "Dan Hidden", schemas.RoleUser)
	hidden.IsPublic = false

	admin := member("5", "Site Admin", schemas.RoleAdmin)
	me := member("7", "Me", schemas.RoleUser)

	return []schemas.User{alice, bob, carol, hidden, admin, me}
}

func homeNames(view schemas.ViewDTO) []string {
	names := []string{}
	for _, card := range view.Home.Users {
		names = append(names, card.User.Name)
	}
	return names
}

func TestHomeView(t *testing.T) {
	testCases := []struct {
		name         string
		search       string
		availability string
		names        []string
		available    int
	}{
		{"Everyone", "", "all", []string{"Alice Smith", "Bob Jones", "Carol White"}, 2},
		{"SearchBySkill", "guitar", "all", []string{"Alice Smith", "Bob Jones"}, 1},
		{"SearchByLocation", "BERLIN", "", []string{"Bob Jones"}, 1},
		{"SearchByBio", "photo", "all", []string{"Carol White"}, 1},
		{"FilterByAvailability", "", "available", []string{"Bob Jones", "Carol White"}, 2},
		{"SearchAndFilter", "guitar", "weekends", []string{"Alice Smith"}, 0},
		{"NoMatch", "cooking", "all", []string{}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.signIn(schemas.RoleUser, "7")
			f.coord.users = directory()
			f.coord.SetSearchTerm(tc.search)
			f.coord.SetAvailabilityFilter(tc.availability)

			view := f.coord.View(ViewOptions{})

			require.NotNil(t, view.Home)
			assert.Equal(t, tc.names, homeNames(view))
			assert.Equal(t, len(tc.names), view.Home.Matches)
			assert.Equal(t, tc.available, view.Home.AvailableCount)
			for _, card := range view.Home.Users {
				assert.True(t, card.CanRequestSwap)
				assert.Equal(t, schemas.RecentlyActive, card.LastActive)
			}
		})
	}
}

func TestHomeViewPaginates(t *testing.T) {
	f := newFixture(t)
	f.coord.users = directory()

	view := f.coord.View(ViewOptions{Offset: 1, Limit: 1})

	require.NotNil(t, view.Home)
	assert.Equal(t, []string{"Bob Jones"}, homeNames(view))
	assert.Equal(t, schemas.Pagination{Offset: 1, Limit: 1, Records: 4}, view.Home.Pagination)
	assert.False(t, view.Home.Users[0].CanRequestSwap)

	view = f.coord.View(ViewOptions{})
	assert.Equal(t, 6, view.Home.Pagination.Limit)
}

func TestRenderDrainsNotices(t *testing.T) {
	f := newFixture(t)
	f.coord.notify("Hello", "World")

	view := f.coord.View(ViewOptions{})
	assert.Len(t, view.Notices, 1)

	view = f.coord.Render(ViewOptions{})
	assert.Len(t, view.Notices, 1)

	view = f.coord.Render(ViewOptions{})
	assert.Empty(t, view.Notices)
	assert.Empty(t, f.coord.DrainNotices())
}

func TestHeaderCountsUnread(t *testing.T) {
	f := newFixture(t)
	f.signIn(schemas.RoleUser, "7")
	f.coord.notifications = []schemas.Notification{
		{ID: "1", Read: false},
		{ID: "2", Read: true},
		{ID: "3", Read: false},
	}

	header := f.coord.View(ViewOptions{}).Header

	assert.Equal(t, 2, header.UnreadNotifications)
	assert.Equal(t, schemas.RoleUser, header.Role)
	assert.Equal(t, "all", header.AvailabilityFilter)
}
