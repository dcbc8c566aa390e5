// Package coordinator owns the state of one browser session: who is signed in,
// which page is shown, the cached entity collections and the pending notices.
// Every user intent is dispatched to the backend through a managers.APIMgr and
// its outcome is folded back into that state.
package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"skillswap-web/internal/managers"
	"skillswap-web/internal/schemas"
	"skillswap-web/internal/utils"
)

// DefaultAdminCacheTTL is how long a persisted admin snapshot is served without a full reload.
const DefaultAdminCacheTTL = 5 * time.Minute

// Loading flags, keyed by what is in flight.
const (
	loadingUsers         = "users"
	loadingSwaps         = "swaps"
	loadingNotifications = "notifications"
	loadingSkills        = "skills"
	loadingProfile       = "profile"
	loadingAdmin         = "admin"
	loadingAuth          = "auth"
	loadingAction        = "action"
)

const noticeDestructive = "destructive"

// Options tune a Coordinator. Zero values select the defaults.
type Options struct {
	AdminCacheTTL time.Duration
	// Now is the clock used for admin cache freshness.
	Now func() time.Time
	// Spawn runs background work such as the silent admin refresh.
	Spawn  func(task func())
	Tokens managers.TokenMgr
}

type adminState struct {
	dashboard     schemas.AdminDashboard
	users         []schemas.User
	swaps         []schemas.SwapRequest
	notifications []schemas.Notification
	cachedAt      int64
}

type profileLoadState struct {
	identity schemas.ID
	inFlight bool
	done     bool
}

// Coordinator is the session and navigation state machine of one browser session.
// The mutex guards state only and is never held across a backend call.
type Coordinator struct {
	mu sync.Mutex

	api           managers.APIMgr
	storage       managers.StorageMgr
	tokens        managers.TokenMgr
	now           func() time.Time
	spawn         func(task func())
	adminCacheTTL time.Duration

	startOnce          sync.Once
	session            *schemas.Session
	users              []schemas.User
	swaps              []schemas.SwapRequest
	notifications      []schemas.Notification
	skills             []string
	admin              *adminState
	page               schemas.Page
	viewedUserID       schemas.ID
	viewedUser         *schemas.User
	searchTerm         string
	availabilityFilter string
	darkMode           bool
	loading            map[string]bool
	lastError          *schemas.AppError
	notices            []schemas.NoticeDTO
	scrollToTop        bool
	generations        map[string]uint64
	profileLoad        profileLoadState
}

// New creates the coordinator of one browser session and registers it as the
// adapter's auth failure handler.
func New(api managers.APIMgr, storage managers.StorageMgr, opts Options) *Coordinator {
	if opts.AdminCacheTTL <= 0 {
		opts.AdminCacheTTL = DefaultAdminCacheTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Spawn == nil {
		opts.Spawn = func(task func()) { go task() }
	}
	if opts.Tokens == nil {
		opts.Tokens = managers.NewTokenManager()
	}

	c := &Coordinator{
		api:                api,
		storage:            storage,
		tokens:             opts.Tokens,
		now:                opts.Now,
		spawn:              opts.Spawn,
		adminCacheTTL:      opts.AdminCacheTTL,
		page:               schemas.PageHome,
		availabilityFilter: "all",
		users:              []schemas.User{},
		swaps:              []schemas.SwapRequest{},
		notifications:      []schemas.Notification{},
		skills:             []string{},
		loading:            make(map[string]bool),
		generations:        make(map[string]uint64),
	}
	api.OnAuthFailure(c.handleAuthFailure)
	return c
}

// handleAuthFailure runs after the adapter could not refresh the credentials and
// has already cleared storage.
func (c *Coordinator) handleAuthFailure(ctx context.Context) {
	utils.LogMessageWithFields(ctx, "warn", "Session ended after failed credential refresh")

	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetSessionState()
	c.page = schemas.PageLogin
	c.scrollToTop = true
	c.lastError = schemas.NewAppError(schemas.CodeUnauthorized, schemas.MessageUnauthorized)
	c.pushNotice("Session expired", schemas.MessageUnauthorized, noticeDestructive)
}

// resetSessionState drops everything tied to the signed-in principal. Caller holds mu.
func (c *Coordinator) resetSessionState() {
	c.session = nil
	c.swaps = []schemas.SwapRequest{}
	c.notifications = []schemas.Notification{}
	c.admin = nil
	c.viewedUser = nil
	c.viewedUserID = ""
	c.profileLoad = profileLoadState{}

	// In-flight loads of the ended session must not land.
	for _, collection := range []string{loadingUsers, loadingSwaps, loadingNotifications, loadingAdmin} {
		c.generations[collection]++
		delete(c.loading, collection)
	}
	delete(c.loading, loadingProfile)
}

func (c *Coordinator) role() schemas.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Role()
}

// currentUser returns a copy of the signed-in user, or nil for guests.
func (c *Coordinator) currentUser() *schemas.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	user := c.session.User
	return &user
}

func (c *Coordinator) setLoading(key string, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if loading {
		c.loading[key] = true
		return
	}
	delete(c.loading, key)
}

// beginLoad issues a new generation for collection. Responses of older
// generations are discarded when they arrive.
func (c *Coordinator) beginLoad(collection string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[collection]++
	c.loading[collection] = true
	return c.generations[collection]
}

// endLoad clears the loading flag if gen is still the latest load and reports
// whether it is. Caller holds mu.
func (c *Coordinator) endLoad(collection string, gen uint64) bool {
	if c.generations[collection] != gen {
		return false
	}
	delete(c.loading, collection)
	return true
}

// pushNotice queues a toast. Caller holds mu.
func (c *Coordinator) pushNotice(title, description, variant string) {
	c.notices = append(c.notices, schemas.NoticeDTO{
		Title:       title,
		Description: description,
		Variant:     variant,
	})
}

func (c *Coordinator) notify(title, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushNotice(title, description, "")
}

// failureHandler returns the side effect applied to every failed backend call:
// log, remember the error and queue a destructive notice titled title.
func (c *Coordinator) failureHandler(ctx context.Context, title string) func(*schemas.AppError) {
	return func(appErr *schemas.AppError) {
		utils.LogAppError(ctx, appErr, title)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.lastError = appErr
		c.pushNotice(title, utils.GetUserFriendlyMessage(appErr), noticeDestructive)
	}
}

// call runs one backend call. A failure is normalized and surfaced under title.
func (c *Coordinator) call(ctx context.Context, title string, op func() ([]byte, error)) ([]byte, *schemas.AppError) {
	return utils.HandleAsyncOperation(op, c.failureHandler(ctx, title))
}

// quietCall runs one backend call whose failure is only logged.
func (c *Coordinator) quietCall(ctx context.Context, where string, op func() ([]byte, error)) ([]byte, *schemas.AppError) {
	return utils.HandleAsyncOperation(op, func(appErr *schemas.AppError) {
		utils.LogAppError(ctx, appErr, where)
	})
}

// reject refuses an intent locally, without contacting the backend.
func (c *Coordinator) reject(ctx context.Context, code, title, message string) *schemas.AppError {
	appErr := schemas.NewAppError(code, message)
	utils.LogMessageWithFields(ctx, "info", fmt.Sprintf("Rejected locally: %s", message))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = appErr
	c.pushNotice(title, message, noticeDestructive)
	return appErr
}

// invalidResponse surfaces a response the client could not decode.
func (c *Coordinator) invalidResponse(ctx context.Context, title string, err error) *schemas.AppError {
	appErr := &schemas.AppError{
		Message: schemas.MessageInvalidResponse,
		Code:    schemas.CodeAPIError,
		Details: err.Error(),
	}
	c.failureHandler(ctx, title)(appErr)
	return appErr
}

// clearStorage removes the persisted session. Failures are logged only.
func (c *Coordinator) clearStorage(ctx context.Context) {
	if err := c.storage.ClearSession(ctx); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Could not clear session storage", err)
	}
}

func (c *Coordinator) decodeUser(data []byte) (schemas.User, bool, error) {
	var payload schemas.UserPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return schemas.User{}, false, fmt.Errorf("decode user: %w", err)
	}
	return utils.NormalizeUser(payload), utils.PayloadHasProfileFields(payload), nil
}
