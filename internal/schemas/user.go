// Package schemas defines the data structures shared by the coordinator, the
// backend adapter and the BFF routes.
package schemas

import "encoding/json"

// Role is the role of a signed-in principal.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Availability is the availability a member advertises on their profile.
type Availability string

const (
	AvailabilityWeekdays  Availability = "weekdays"
	AvailabilityWeekends  Availability = "weekends"
	AvailabilityEvenings  Availability = "evenings"
	AvailabilityMornings  Availability = "mornings"
	AvailabilityFlexible  Availability = "flexible"
	AvailabilityBusy      Availability = "busy"
	AvailabilityAvailable Availability = "available"
)

// RecentlyActive is shown when the backend supplied no activity timestamp.
const RecentlyActive = "Recently active"

// User is the canonical in-memory shape of a member. Its JSON encoding uses the
// camelCase field names, so an encoded User is itself a valid payload.
type User struct {
	ID            ID           `json:"id"`
	Name          string       `json:"name"`
	Username      string       `json:"username,omitempty"`
	Email         string       `json:"email,omitempty"`
	Location      string       `json:"location"`
	Bio           string       `json:"bio"`
	Avatar        string       `json:"avatar"`
	IsPublic      bool         `json:"isPublic"`
	Availability  Availability `json:"availability"`
	SkillsOffered []string     `json:"skillsOffered"`
	SkillsWanted  []string     `json:"skillsWanted"`
	Rating        float64      `json:"rating"`
	TotalSwaps    int          `json:"totalSwaps"`
	Badges        []string     `json:"badges"`
	Role          Role         `json:"role"`
	IsActive      bool         `json:"isActive"`
	IsBanned      bool         `json:"isBanned"`
	LastActive    string       `json:"lastActive,omitempty"`
}

// DisplayLastActive returns the activity label, falling back to RecentlyActive.
func (u User) DisplayLastActive() string {
	if u.LastActive == "" {
		return RecentlyActive
	}
	return u.LastActive
}

// CommonUserFields are the keys both wire dialects spell the same way.
type CommonUserFields struct {
	ID           ID         `json:"id"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Location     *string    `json:"location"`
	Bio          *string    `json:"bio"`
	Avatar       *string    `json:"avatar"`
	Availability string     `json:"availability"`
	Rating       *Number    `json:"rating"`
	Badges       []SkillRef `json:"badges"`
	Role         string     `json:"role"`
}

// LegacyUserFields is the camelCase dialect of the original client-side mock data.
type LegacyUserFields struct {
	SkillsOffered []SkillRef `json:"skillsOffered"`
	SkillsWanted  []SkillRef `json:"skillsWanted"`
	IsPublic      *bool      `json:"isPublic"`
	TotalSwaps    *int       `json:"totalSwaps"`
	IsAdmin       *bool      `json:"isAdmin"`
	IsActive      *bool      `json:"isActive"`
	IsBanned      *bool      `json:"isBanned"`
	LastActive    string     `json:"lastActive"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
}

// BackendUserFields is the snake_case dialect served by the backend API.
type BackendUserFields struct {
	FullName      string     `json:"full_name"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	SkillsOffered []SkillRef `json:"skills_offered"`
	SkillsWanted  []SkillRef `json:"skills_wanted"`
	IsPublic      *bool      `json:"is_public"`
	TotalSwaps    *int       `json:"total_swaps"`
	IsStaff       *bool      `json:"is_staff"`
	IsSuperuser   *bool      `json:"is_superuser"`
	IsActive      *bool      `json:"is_active"`
	IsBanned      *bool      `json:"is_banned"`
	LastActive    string     `json:"last_active"`
}

// UserPayload is one user object from the wire, read through both dialect views.
// A payload may carry either dialect or a mix of the two.
type UserPayload struct {
	Common  CommonUserFields
	Legacy  LegacyUserFields
	Backend BackendUserFields
}

// UnmarshalJSON decodes the same object into every dialect view.
func (p *UserPayload) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &p.Common); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &p.Legacy); err != nil {
		return err
	}
	return json.Unmarshal(data, &p.Backend)
}
