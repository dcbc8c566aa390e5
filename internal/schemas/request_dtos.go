// Package schemas defines the request structures for the intents the BFF accepts.
package schemas

// LoginRequest is a struct that represents a login request
// Email is required and must look like an email address
// Password is required
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email_format"`
	Password string `json:"password" validate:"required"`
}

// RegistrationRequest is a struct that represents a registration request
// Username is required and must be less than 150 characters
// Email is required and must look like an email address
// Password must be at least 8 characters and contain letters and numbers
// PasswordConfirm must equal Password
type RegistrationRequest struct {
	Username        string `json:"username" validate:"required,max=150,username_validation"`
	Email           string `json:"email" validate:"required,email_format"`
	FirstName       string `json:"first_name" validate:"max=150" sanitize:"true"`
	LastName        string `json:"last_name" validate:"max=150" sanitize:"true"`
	Password        string `json:"password" validate:"required,min=8,password_validation"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Bio             string `json:"bio" validate:"max=500" sanitize:"true"`
	Location        string `json:"location" validate:"max=100" sanitize:"true"`
}

// SwapRequestForm is a struct that represents a new swap request
// TargetUserID is required
// OfferedSkill and WantedSkill are required skill names
// Message is optional and bounded
type SwapRequestForm struct {
	TargetUserID string `json:"targetUserId" validate:"required"`
	OfferedSkill string `json:"offeredSkill" validate:"required,max=100,skill_name" sanitize:"true"`
	WantedSkill  string `json:"wantedSkill" validate:"required,max=100,skill_name" sanitize:"true"`
	Message      string `json:"message" validate:"max=500" sanitize:"true"`
}

// ProfileUpdateRequest is a struct that represents a profile update of the
// signed-in member. Nil fields are left untouched.
type ProfileUpdateRequest struct {
	FirstName     *string  `json:"first_name,omitempty" validate:"omitempty,max=150" sanitize:"true"`
	LastName      *string  `json:"last_name,omitempty" validate:"omitempty,max=150" sanitize:"true"`
	Bio           *string  `json:"bio,omitempty" validate:"omitempty,max=500" sanitize:"true"`
	Location      *string  `json:"location,omitempty" validate:"omitempty,max=100" sanitize:"true"`
	Avatar        *string  `json:"avatar,omitempty" validate:"omitempty,max=500"`
	Availability  *string  `json:"availability,omitempty" validate:"omitempty,oneof=weekdays weekends evenings mornings flexible busy available"`
	IsPublic      *bool    `json:"is_public,omitempty"`
	SkillsOffered []string `json:"skills_offered,omitempty" validate:"omitempty,max=50,dive,required,max=100,skill_name"`
	SkillsWanted  []string `json:"skills_wanted,omitempty" validate:"omitempty,max=50,dive,required,max=100,skill_name"`
}

// RatingRequest is a struct that represents a rating of a completed swap
// Score is required and between 1 and 5
// Feedback is optional and bounded
type RatingRequest struct {
	Score    int    `json:"score" validate:"required,min=1,max=5"`
	Feedback string `json:"feedback" validate:"max=500" sanitize:"true"`
}

// BroadcastRequest is a struct that represents a platform-wide admin message
type BroadcastRequest struct {
	Title   string `json:"title" validate:"required,max=200" sanitize:"true"`
	Message string `json:"message" validate:"required,max=500" sanitize:"true"`
	Type    string `json:"type,omitempty" validate:"omitempty,max=20"`
}

// NavigateRequest is a struct that represents a page change
type NavigateRequest struct {
	Page string `json:"page" validate:"required,oneof=home login register profile requests admin user-profile"`
}

// FilterRequest is a struct that represents the home page search and filter
type FilterRequest struct {
	SearchTerm   string `json:"searchTerm" validate:"max=100" sanitize:"true"`
	Availability string `json:"availability" validate:"omitempty,oneof=all weekdays weekends evenings mornings flexible busy available"`
}

// AdminUpdateRequest is the body of the admin update call
// Nil fields are left untouched
type AdminUpdateRequest struct {
	IsActive *bool `json:"is_active,omitempty"`
	IsPublic *bool `json:"is_public,omitempty"`
}
