package schemas

// Page identifies one of the views the coordinator can render.
type Page string

const (
	PageHome        Page = "home"
	PageLogin       Page = "login"
	PageRegister    Page = "register"
	PageProfile     Page = "profile"
	PageRequests    Page = "requests"
	PageAdmin       Page = "admin"
	PageUserProfile Page = "user-profile"
)

// Request actions offered on the requests page.
const (
	ActionAccept   = "accept"
	ActionReject   = "reject"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
	ActionRate     = "rate"
)

// NoticeDTO is a transient toast shown to the user.
// Variant is empty for informational notices and "destructive" for failures.
type NoticeDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

// HeaderDTO is the session summary shown on every page with a header.
type HeaderDTO struct {
	User                *User          `json:"user"`
	Role                Role           `json:"role"`
	DarkMode            bool           `json:"darkMode"`
	SearchTerm          string         `json:"searchTerm"`
	AvailabilityFilter  string         `json:"availabilityFilter"`
	Notifications       []Notification `json:"notifications"`
	UnreadNotifications int            `json:"unreadNotifications"`
}

// UserCardDTO is one member as listed on the home page.
type UserCardDTO struct {
	User           User   `json:"user"`
	LastActive     string `json:"lastActive"`
	CanRequestSwap bool   `json:"canRequestSwap"`
}

// HomeViewDTO is the browse page.
type HomeViewDTO struct {
	Users          []UserCardDTO `json:"users"`
	Matches        int           `json:"matches"`
	AvailableCount int           `json:"availableCount"`
	Pagination     Pagination    `json:"pagination"`
}

// RequestEntryDTO is one swap request with the actions the viewer may take on it.
type RequestEntryDTO struct {
	Request SwapRequest `json:"request"`
	Actions []string    `json:"actions"`
}

// RequestsViewDTO splits the viewer's swap requests into received and sent.
type RequestsViewDTO struct {
	Received []RequestEntryDTO `json:"received"`
	Sent     []RequestEntryDTO `json:"sent"`
}

// ProfileViewDTO is the signed-in member's own profile.
type ProfileViewDTO struct {
	User    *User    `json:"user"`
	Loading bool     `json:"loading"`
	Skills  []string `json:"skills"`
}

// UserProfileViewDTO is another member's profile.
type UserProfileViewDTO struct {
	User           *User  `json:"user"`
	LastActive     string `json:"lastActive"`
	CanRequestSwap bool   `json:"canRequestSwap"`
}

// AdminViewDTO is the admin dashboard.
type AdminViewDTO struct {
	Dashboard     AdminDashboard `json:"dashboard"`
	Users         []User         `json:"users"`
	Swaps         []SwapRequest  `json:"swaps"`
	Notifications []Notification `json:"notifications"`
	CachedAt      int64          `json:"cachedAt,omitempty"`
}

// ViewDTO is the full render of a browser session.
type ViewDTO struct {
	Page        Page                `json:"page"`
	Header      HeaderDTO           `json:"header"`
	Home        *HomeViewDTO        `json:"home,omitempty"`
	Requests    *RequestsViewDTO    `json:"requests,omitempty"`
	Profile     *ProfileViewDTO     `json:"profile,omitempty"`
	UserProfile *UserProfileViewDTO `json:"userProfile,omitempty"`
	Admin       *AdminViewDTO       `json:"admin,omitempty"`
	Loading     map[string]bool     `json:"loading"`
	LastError   *AppError           `json:"lastError,omitempty"`
	Notices     []NoticeDTO         `json:"notices"`
	ScrollToTop bool                `json:"scrollToTop"`
}

// Pagination is a struct that represents a pagination
// Offset is the given offset of the pagination
// Limit is the given limit of the pagination
// Records is the total records of the pagination
type Pagination struct {
	Offset  int `json:"offset"`
	Limit   int `json:"limit"`
	Records int `json:"records"`
}

// MetadataDTO describes the running BFF.
type MetadataDTO struct {
	ApiVersion  string `json:"apiVersion"`
	ApiName     string `json:"apiName"`
	PullRequest string `json:"pullRequest,omitempty"`
}
