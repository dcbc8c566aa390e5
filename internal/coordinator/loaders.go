package coordinator

import (
	"context"
	"time"

	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

const (
	skillsRetries    = 2
	skillsRetryDelay = 250 * time.Millisecond
)

// LoadUsers refreshes the member directory. Guests read the public listing.
func (c *Coordinator) LoadUsers(ctx context.Context) *schemas.AppError {
	const title = "Could not load members"

	signedIn := c.currentUser() != nil
	gen := c.beginLoad(loadingUsers)

	body, appErr := c.call(ctx, title, func() ([]byte, error) {
		if signedIn {
			return c.api.Get(ctx, pathUsers, nil)
		}
		return c.api.GetPublic(ctx, pathUsers, nil)
	})
	if appErr != nil {
		c.finishLoad(loadingUsers, gen)
		return appErr
	}

	users, err := utils.NormalizeUsers(body)
	if err != nil {
		c.finishLoad(loadingUsers, gen)
		return c.invalidResponse(ctx, title, err)
	}

	c.mu.Lock()
	if c.endLoad(loadingUsers, gen) {
		c.users = users
	}
	c.mu.Unlock()
	return nil
}

// LoadSwapRequests refreshes the signed-in member's sent and received requests.
func (c *Coordinator) LoadSwapRequests(ctx context.Context) *schemas.AppError {
	const title = "Could not load swap requests"

	if !Capabilities(c.role()).Allows(CapViewRequests) {
		return nil
	}
	gen := c.beginLoad(loadingSwaps)

	sent, appErr := c.fetchSwaps(ctx, title, pathSentSwaps)
	if appErr != nil {
		c.finishLoad(loadingSwaps, gen)
		return appErr
	}
	received, appErr := c.fetchSwaps(ctx, title, pathReceivedSwaps)
	if appErr != nil {
		c.finishLoad(loadingSwaps, gen)
		return appErr
	}

	c.mu.Lock()
	if c.endLoad(loadingSwaps, gen) {
		c.swaps = mergeSwaps(received, sent)
	}
	c.mu.Unlock()
	return nil
}

// LoadNotifications refreshes the signed-in member's notifications.
func (c *Coordinator) LoadNotifications(ctx context.Context) *schemas.AppError {
	const title = "Could not load notifications"

	if !Capabilities(c.role()).Allows(CapReadNotifications) {
		return nil
	}
	gen := c.beginLoad(loadingNotifications)

	body, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Get(ctx, pathNotifications, nil)
	})
	if appErr != nil {
		c.finishLoad(loadingNotifications, gen)
		return appErr
	}

	notifications, err := utils.NormalizeNotifications(body)
	if err != nil {
		c.finishLoad(loadingNotifications, gen)
		return c.invalidResponse(ctx, title, err)
	}

	c.mu.Lock()
	if c.endLoad(loadingNotifications, gen) {
		c.notifications = notifications
	}
	c.mu.Unlock()
	return nil
}

// LoadSkills refreshes the skill catalogue offered as suggestions on the profile page.
// Transient failures are retried; a final failure leaves the previous catalogue
// and is only logged.
func (c *Coordinator) LoadSkills(ctx context.Context) {
	gen := c.beginLoad(loadingSkills)

	body, appErr := utils.RetryOperation(ctx, func(ctx context.Context) ([]byte, error) {
		return c.api.Get(ctx, pathSkills, nil)
	}, skillsRetries, skillsRetryDelay)
	if appErr != nil {
		utils.LogAppError(ctx, appErr, "LoadSkills")
		c.finishLoad(loadingSkills, gen)
		return
	}

	items, err := utils.DecodeList(body)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not decode skill catalogue", err)
		c.finishLoad(loadingSkills, gen)
		return
	}

	skills := make([]string, 0, len(items))
	for _, item := range items {
		var ref schemas.SkillRef
		if err := ref.UnmarshalJSON(item); err == nil && ref.Name != "" {
			skills = append(skills, ref.Name)
		}
	}

	c.mu.Lock()
	if c.endLoad(loadingSkills, gen) {
		c.skills = skills
	}
	c.mu.Unlock()
}

// EnsureProfileLoaded fetches the full record of the signed-in member when the
// session only holds an abbreviated one. At most one fetch runs per session
// identity and none is repeated after it succeeded.
func (c *Coordinator) EnsureProfileLoaded(ctx context.Context) *schemas.AppError {
	c.mu.Lock()
	if c.session == nil || !c.session.Partial {
		c.mu.Unlock()
		return nil
	}
	identity := c.session.User.ID
	if c.profileLoad.identity == identity && (c.profileLoad.inFlight || c.profileLoad.done) {
		c.mu.Unlock()
		return nil
	}
	c.profileLoad = profileLoadState{identity: identity, inFlight: true}
	c.loading[loadingProfile] = true
	c.mu.Unlock()

	user, complete, appErr := c.fetchCurrentUser(ctx)

	c.mu.Lock()
	delete(c.loading, loadingProfile)
	if c.profileLoad.identity != identity {
		c.mu.Unlock()
		return appErr
	}
	c.profileLoad.inFlight = false
	if appErr != nil {
		c.mu.Unlock()
		return appErr
	}
	c.profileLoad.done = true

	current := c.session != nil && c.session.User.ID == identity
	if current {
		c.session.User = user
		c.session.Partial = !complete
	}
	c.mu.Unlock()

	if current {
		if err := c.storage.SetSavedUser(ctx, user); err != nil {
			utils.LogMessageWithFieldsAndError(ctx, "warn", "Could not persist session user", err)
		}
	}
	return nil
}

// finishLoad clears the loading flag of a failed load if it is still the latest.
func (c *Coordinator) finishLoad(collection string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLoad(collection, gen)
}

func (c *Coordinator) fetchSwaps(ctx context.Context, title, path string) ([]schemas.SwapRequest, *schemas.AppError) {
	body, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Get(ctx, path, nil)
	})
	if appErr != nil {
		return nil, appErr
	}

	swaps, err := utils.NormalizeSwapRequests(body)
	if err != nil {
		return nil, c.invalidResponse(ctx, title, err)
	}
	return swaps, nil
}

// mergeSwaps concatenates lists, keeping the first occurrence of every id.
func mergeSwaps(lists ...[]schemas.SwapRequest) []schemas.SwapRequest {
	seen := make(map[schemas.ID]bool)
	merged := make([]schemas.SwapRequest, 0)
	for _, list := range lists {
		for _, swap := range list {
			if swap.ID != "" && seen[swap.ID] {
				continue
			}
			seen[swap.ID] = true
			merged = append(merged, swap)
		}
	}
	return merged
}
