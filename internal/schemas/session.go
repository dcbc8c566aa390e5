package schemas

// Session is the signed-in principal together with its bearer credentials.
// Partial marks a user record that lacked profile fields when it was received,
// such as the abbreviated user embedded in a login response.
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
	Partial      bool   `json:"-"`
}

// Role returns the session role, RoleGuest for a nil session.
func (s *Session) Role() Role {
	if s == nil {
		return RoleGuest
	}
	if s.User.Role == "" {
		return RoleUser
	}
	return s.User.Role
}

// TokenPairDTO is the login/registration response. The backend has sent both
// "access" and "access_token" spellings over time.
type TokenPairDTO struct {
	Access       string       `json:"access"`
	AccessToken  string       `json:"access_token"`
	Refresh      string       `json:"refresh"`
	RefreshToken string       `json:"refresh_token"`
	User         *UserPayload `json:"user"`
}

// AccessCredential returns whichever access spelling is present.
func (t TokenPairDTO) AccessCredential() string {
	return firstNonEmpty(t.Access, t.AccessToken)
}

// RefreshCredential returns whichever refresh spelling is present.
func (t TokenPairDTO) RefreshCredential() string {
	return firstNonEmpty(t.Refresh, t.RefreshToken)
}

// RefreshTokenRequest is the body of the credential refresh call.
type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

// Download is a binary response, such as an admin report.
type Download struct {
	ContentType string
	FileName    string
	Data        []byte
}

// SwapCreateBody is the backend body creating a swap request.
type SwapCreateBody struct {
	ToUserID     interface{} `json:"to_user_id"`
	OfferedSkill string      `json:"offered_skill"`
	WantedSkill  string      `json:"wanted_skill"`
	Message      string      `json:"message"`
}

// SwapStatusBody is the backend body of a swap status transition.
type SwapStatusBody struct {
	Status SwapStatus `json:"status"`
}

// RatingCreateBody is the backend body rating a completed swap.
type RatingCreateBody struct {
	SwapRequestID interface{} `json:"swap_request_id"`
	Rating        int         `json:"rating"`
	Feedback      string      `json:"feedback"`
}

// NotificationReadBody marks a notification as read.
type NotificationReadBody struct {
	IsRead bool `json:"is_read"`
}

// LoginBody is the backend login body.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
