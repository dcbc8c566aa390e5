package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skillswap-web/internal/coordinator"
	"skillswap-web/internal/managers"
	"skillswap-web/internal/utils"
)

// Registry defaults. Zero values in RegistryLimits select them.
const (
	DefaultSessionIdleTTL = 30 * time.Minute
	DefaultMaxSessions    = 10000
)

// SessionProvider hands out the coordinator of a browser session.
type SessionProvider interface {
	Coordinator(ctx context.Context, sessionID string) *coordinator.Coordinator
	Ping(ctx context.Context) error
}

// StoreFactory creates the local storage of one browser session.
type StoreFactory func(sessionID string) managers.KeyValueStore

// RegistryLimits bound how many coordinators a SessionRegistry keeps alive.
type RegistryLimits struct {
	// IdleTTL evicts a session not seen for this long.
	IdleTTL time.Duration
	// MaxSessions evicts the least recently seen session once reached.
	MaxSessions int
	Now         func() time.Time
}

type sessionEntry struct {
	coord    *coordinator.Coordinator
	lastSeen time.Time
}

// SessionRegistry keeps one coordinator per browser session. Each coordinator
// owns its own storage view and backend adapter, so credentials never leak
// between browsers. Idle sessions are evicted; a session whose storage outlives
// the eviction (Redis) is restored by Start on its next request.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	lastSweep time.Time

	newStore   StoreFactory
	ping       func(ctx context.Context) error
	apiBaseURL string
	apiTimeout time.Duration
	options    coordinator.Options
	limits     RegistryLimits
}

// NewSessionRegistry creates a registry whose coordinators talk to the backend at
// apiBaseURL. ping checks the storage backend and may be nil.
func NewSessionRegistry(newStore StoreFactory, ping func(ctx context.Context) error, apiBaseURL string, apiTimeout time.Duration, options coordinator.Options, limits RegistryLimits) *SessionRegistry {
	if limits.IdleTTL <= 0 {
		limits.IdleTTL = DefaultSessionIdleTTL
	}
	if limits.MaxSessions <= 0 {
		limits.MaxSessions = DefaultMaxSessions
	}
	if limits.Now == nil {
		limits.Now = time.Now
	}

	return &SessionRegistry{
		sessions:   make(map[string]*sessionEntry),
		lastSweep:  limits.Now(),
		newStore:   newStore,
		ping:       ping,
		apiBaseURL: apiBaseURL,
		apiTimeout: apiTimeout,
		options:    options,
		limits:     limits,
	}
}

// Coordinator returns the coordinator of sessionID, creating and starting it on
// first use. Start restores whatever the session's storage still holds.
func (r *SessionRegistry) Coordinator(ctx context.Context, sessionID string) *coordinator.Coordinator {
	r.mu.Lock()
	now := r.limits.Now()
	entry, ok := r.sessions[sessionID]
	if ok {
		entry.lastSeen = now
	} else {
		r.evict(ctx, now)
		storage := managers.NewStorageManager(r.newStore(sessionID))
		api := managers.NewAPIManager(r.apiBaseURL, r.apiTimeout, storage)
		entry = &sessionEntry{coord: coordinator.New(api, storage, r.options), lastSeen: now}
		r.sessions[sessionID] = entry
		utils.LogMessageWithFields(ctx, "debug", "Created coordinator for browser session")
	}
	r.mu.Unlock()

	entry.coord.Start(ctx)
	return entry.coord
}

// evict makes room for one more session: idle sessions go first, then the least
// recently seen while the registry is full. Caller holds mu.
func (r *SessionRegistry) evict(ctx context.Context, now time.Time) {
	evicted := 0
	if now.Sub(r.lastSweep) >= r.limits.IdleTTL/2 || len(r.sessions) >= r.limits.MaxSessions {
		r.lastSweep = now
		for id, entry := range r.sessions {
			if now.Sub(entry.lastSeen) >= r.limits.IdleTTL {
				delete(r.sessions, id)
				evicted++
			}
		}
	}

	for len(r.sessions) >= r.limits.MaxSessions {
		var oldestID string
		var oldest *sessionEntry
		for id, entry := range r.sessions {
			if oldest == nil || entry.lastSeen.Before(oldest.lastSeen) {
				oldestID, oldest = id, entry
			}
		}
		delete(r.sessions, oldestID)
		evicted++
	}

	if evicted > 0 {
		utils.LogMessageWithFields(ctx, "debug", fmt.Sprintf("Evicted %d browser sessions", evicted))
	}
}

// Ping checks that session storage is reachable.
func (r *SessionRegistry) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// Len returns the number of browser sessions currently held.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
