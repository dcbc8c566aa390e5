package coordinator

import (
	"context"
	"fmt"
	"strconv"

	"skillswap-web/internal/schemas"
)

// transitions lists the statuses each status may move to.
var transitions = map[schemas.SwapStatus][]schemas.SwapStatus{
	schemas.SwapPending:  {schemas.SwapAccepted, schemas.SwapRejected, schemas.SwapCancelled},
	schemas.SwapAccepted: {schemas.SwapCompleted, schemas.SwapCancelled},
}

var transitionNotices = map[schemas.SwapStatus][2]string{
	schemas.SwapAccepted:  {"Request accepted!", "You can now coordinate the swap."},
	schemas.SwapRejected:  {"Request declined", "The swap request has been declined."},
	schemas.SwapCompleted: {"Swap completed!", "Don't forget to rate your experience."},
	schemas.SwapCancelled: {"Request cancelled", "Your swap request has been cancelled."},
}

// RequestSwap sends a swap request to another member. Guests and admins are
// refused locally without contacting the backend.
func (c *Coordinator) RequestSwap(ctx context.Context, form schemas.SwapRequestForm) *schemas.AppError {
	const title = "Could not send request"

	role := c.role()
	if !Capabilities(role).Allows(CapRequestSwap) {
		message := schemas.MessageGuestSwapRequest
		if role == schemas.RoleAdmin {
			message = schemas.MessageAdminSwapRequest
		}
		return c.reject(ctx, schemas.CodePermissionDenied, "Cannot send request", message)
	}

	c.setLoading(loadingAction, true)
	defer c.setLoading(loadingAction, false)

	body := schemas.SwapCreateBody{
		ToUserID:     wireID(schemas.ID(form.TargetUserID)),
		OfferedSkill: form.OfferedSkill,
		WantedSkill:  form.WantedSkill,
		Message:      form.Message,
	}
	if _, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Post(ctx, pathSwaps, body)
	}); appErr != nil {
		return appErr
	}

	c.notify("Request sent!", fmt.Sprintf("Your swap request has been sent to %s", c.userName(schemas.ID(form.TargetUserID))))
	c.LoadSwapRequests(ctx)
	return nil
}

// AcceptRequest accepts a pending request received by the signed-in member.
func (c *Coordinator) AcceptRequest(ctx context.Context, id schemas.ID) *schemas.AppError {
	return c.transition(ctx, id, schemas.ActionAccept, schemas.SwapAccepted)
}

// RejectRequest declines a pending request received by the signed-in member.
func (c *Coordinator) RejectRequest(ctx context.Context, id schemas.ID) *schemas.AppError {
	return c.transition(ctx, id, schemas.ActionReject, schemas.SwapRejected)
}

// CompleteRequest marks an accepted request as completed.
func (c *Coordinator) CompleteRequest(ctx context.Context, id schemas.ID) *schemas.AppError {
	return c.transition(ctx, id, schemas.ActionComplete, schemas.SwapCompleted)
}

// CancelRequest withdraws a pending request sent by the signed-in member.
func (c *Coordinator) CancelRequest(ctx context.Context, id schemas.ID) *schemas.AppError {
	return c.transition(ctx, id, schemas.ActionCancel, schemas.SwapCancelled)
}

func (c *Coordinator) transition(ctx context.Context, id schemas.ID, action string, status schemas.SwapStatus) *schemas.AppError {
	const title = "Could not update request"

	if !Capabilities(c.role()).Allows(CapViewRequests) {
		return c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
	}

	c.mu.Lock()
	swap, me := findSwap(c.swaps, id), c.sessionID()
	c.mu.Unlock()
	if swap == nil {
		return c.reject(ctx, schemas.CodeNotFound, title, schemas.MessageNotFound)
	}
	if !allowedTransition(swap.Status, status) || !containsString(requestActions(*swap, me), action) {
		return c.reject(ctx, schemas.CodeValidationError, title,
			fmt.Sprintf("A %s request cannot be moved to %s.", swap.Status, status))
	}

	c.setLoading(loadingAction, true)
	defer c.setLoading(loadingAction, false)

	if _, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Patch(ctx, swapPath(id.String()), schemas.SwapStatusBody{Status: status})
	}); appErr != nil {
		return appErr
	}

	c.mu.Lock()
	if i := swapIndex(c.swaps, id); i >= 0 {
		c.swaps[i].Status = status
	}
	notice := transitionNotices[status]
	c.pushNotice(notice[0], notice[1], "")
	c.mu.Unlock()

	c.LoadSwapRequests(ctx)
	return nil
}

// SubmitRating rates a swap the signed-in member took part in.
func (c *Coordinator) SubmitRating(ctx context.Context, id schemas.ID, req schemas.RatingRequest) *schemas.AppError {
	const title = "Could not submit rating"

	if !Capabilities(c.role()).Allows(CapSubmitRating) {
		return c.reject(ctx, schemas.CodePermissionDenied, title, schemas.MessageForbidden)
	}

	c.mu.Lock()
	swap, me := findSwap(c.swaps, id), c.sessionID()
	c.mu.Unlock()
	if swap == nil {
		return c.reject(ctx, schemas.CodeNotFound, title, schemas.MessageNotFound)
	}
	if !containsString(requestActions(*swap, me), schemas.ActionRate) {
		return c.reject(ctx, schemas.CodeValidationError, title, "This swap cannot be rated.")
	}

	c.setLoading(loadingAction, true)
	defer c.setLoading(loadingAction, false)

	body := schemas.RatingCreateBody{
		SwapRequestID: wireID(id),
		Rating:        req.Score,
		Feedback:      req.Feedback,
	}
	if _, appErr := c.call(ctx, title, func() ([]byte, error) {
		return c.api.Post(ctx, pathRatings, body)
	}); appErr != nil {
		return appErr
	}

	c.mu.Lock()
	if i := swapIndex(c.swaps, id); i >= 0 {
		score := req.Score
		c.swaps[i].Rated = true
		c.swaps[i].Rating = &score
		c.swaps[i].Feedback = req.Feedback
	}
	c.pushNotice("Rating submitted!", "Thank you for your feedback.", "")
	c.mu.Unlock()

	c.LoadSwapRequests(ctx)
	return nil
}

// requestActions returns the actions viewer may take on swap.
func requestActions(swap schemas.SwapRequest, viewer schemas.ID) []string {
	actions := []string{}
	if viewer == "" {
		return actions
	}
	switch {
	case swap.ToUser.ID == viewer:
		switch swap.Status {
		case schemas.SwapPending:
			actions = append(actions, schemas.ActionAccept, schemas.ActionReject)
		case schemas.SwapAccepted:
			actions = append(actions, schemas.ActionComplete)
		case schemas.SwapCompleted:
			if !swap.Rated {
				actions = append(actions, schemas.ActionRate)
			}
		}
	case swap.FromUser.ID == viewer:
		switch swap.Status {
		case schemas.SwapPending:
			actions = append(actions, schemas.ActionCancel)
		case schemas.SwapAccepted:
			if !swap.Rated {
				actions = append(actions, schemas.ActionRate)
			}
		}
	}
	return actions
}

func allowedTransition(from, to schemas.SwapStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// sessionID returns the signed-in member's id. Caller holds mu.
func (c *Coordinator) sessionID() schemas.ID {
	if c.session == nil {
		return ""
	}
	return c.session.User.ID
}

func (c *Coordinator) userName(id schemas.ID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user := findUser(c.users, id); user != nil {
		return user.Name
	}
	return "the member"
}

func findSwap(swaps []schemas.SwapRequest, id schemas.ID) *schemas.SwapRequest {
	if i := swapIndex(swaps, id); i >= 0 {
		swap := swaps[i]
		return &swap
	}
	return nil
}

func swapIndex(swaps []schemas.SwapRequest, id schemas.ID) int {
	for i := range swaps {
		if swaps[i].ID == id {
			return i
		}
	}
	return -1
}

// wireID sends numeric ids as numbers, the way the backend stores them.
func wireID(id schemas.ID) interface{} {
	if n, err := strconv.ParseInt(id.String(), 10, 64); err == nil {
		return n
	}
	return id.String()
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
