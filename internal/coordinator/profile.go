package coordinator

import (
	"context"

	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// UpdateProfile saves changes to the signed-in member's profile and replaces
// the session user with the record the backend returns.
func (c *Coordinator) UpdateProfile(ctx context.Context, req schemas.ProfileUpdateRequest) *schemas.AppError {
	const title = "Could not update profile"

	if !Capabilities(c.role()).Allows(CapEditProfile) {
		return c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
	}

	c.setLoading(loadingAction, true)
	defer c.setLoading(loadingAction, false)

	body, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Patch(ctx, pathCurrentUser, req)
	})
	if appErr != nil {
		return appErr
	}

	user, complete, err := c.decodeUser(body)
	if err != nil {
		return c.invalidResponse(ctx, title, err)
	}

	c.mu.Lock()
	if c.session == nil || c.session.User.ID != user.ID {
		c.mu.Unlock()
		return nil
	}
	c.session.User = user
	c.session.Partial = !complete
	if i := userIndex(c.users, user.ID); i >= 0 {
		c.users[i] = user
	}
	c.pushNotice("Profile updated!", "Your changes have been saved.", "")
	c.mu.Unlock()

	if err := c.storage.SetSavedUser(ctx, user); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not persist session user", err)
	}
	return nil
}

func userIndex(users []schemas.User, id schemas.ID) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
