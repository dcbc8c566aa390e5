package managers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"skillswap-web/internal/schemas"
)

// Persisted keys of a browser session.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
	SavedUserKey    = "user"
	DarkModeKey     = "skillswap_darkMode"
	AdminCacheKey   = "skillswap_adminData"
)

// KeyValueStore is the primitive string store backing a browser session's local storage.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// StorageMgr defines typed access to the persisted state of one browser session.
// Writes spanning several keys are not atomic.
type StorageMgr interface {
	AccessToken(ctx context.Context) string
	RefreshToken(ctx context.Context) string
	SetTokens(ctx context.Context, access, refresh string) error
	SetAccessToken(ctx context.Context, access string) error
	SavedUser(ctx context.Context) (*schemas.User, bool)
	SetSavedUser(ctx context.Context, user schemas.User) error
	DarkMode(ctx context.Context) bool
	SetDarkMode(ctx context.Context, enabled bool) error
	AdminCache(ctx context.Context) (*schemas.AdminCache, bool)
	SetAdminCache(ctx context.Context, cache schemas.AdminCache) error
	ClearAdminCache(ctx context.Context) error
	ClearSession(ctx context.Context) error
}

// StorageManager implements StorageMgr on top of a KeyValueStore.
type StorageManager struct {
	store KeyValueStore
}

// NewStorageManager wraps store in the typed session accessors.
func NewStorageManager(store KeyValueStore) StorageMgr {
	return &StorageManager{store: store}
}

func (sm *StorageManager) get(ctx context.Context, key string) (string, bool) {
	value, ok, err := sm.store.Get(ctx, key)
	if err != nil {
		log.Warnf("Could not read %s from storage: %v", key, err)
		return "", false
	}
	return value, ok
}

func (sm *StorageManager) AccessToken(ctx context.Context) string {
	value, _ := sm.get(ctx, AccessTokenKey)
	return value
}

func (sm *StorageManager) RefreshToken(ctx context.Context) string {
	value, _ := sm.get(ctx, RefreshTokenKey)
	return value
}

// SetTokens stores both credentials. An empty refresh credential leaves the stored one untouched.
func (sm *StorageManager) SetTokens(ctx context.Context, access, refresh string) error {
	if err := sm.store.Set(ctx, AccessTokenKey, access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	if refresh == "" {
		return nil
	}
	if err := sm.store.Set(ctx, RefreshTokenKey, refresh); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (sm *StorageManager) SetAccessToken(ctx context.Context, access string) error {
	if err := sm.store.Set(ctx, AccessTokenKey, access); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}
	return nil
}

// SavedUser returns the persisted session user. Corrupt entries are treated as absent.
func (sm *StorageManager) SavedUser(ctx context.Context) (*schemas.User, bool) {
	raw, ok := sm.get(ctx, SavedUserKey)
	if !ok || raw == "" {
		return nil, false
	}

	var user schemas.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Warnf("Discarding unreadable saved user: %v", err)
		return nil, false
	}
	return &user, true
}

func (sm *StorageManager) SetSavedUser(ctx context.Context, user schemas.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode saved user: %w", err)
	}
	return sm.store.Set(ctx, SavedUserKey, string(raw))
}

func (sm *StorageManager) DarkMode(ctx context.Context) bool {
	raw, ok := sm.get(ctx, DarkModeKey)
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(raw)
	return err == nil && enabled
}

func (sm *StorageManager) SetDarkMode(ctx context.Context, enabled bool) error {
	return sm.store.Set(ctx, DarkModeKey, strconv.FormatBool(enabled))
}

// AdminCache returns the persisted admin snapshot. Corrupt entries are treated as absent.
func (sm *StorageManager) AdminCache(ctx context.Context) (*schemas.AdminCache, bool) {
	raw, ok := sm.get(ctx, AdminCacheKey)
	if !ok || raw == "" {
		return nil, false
	}

	var cache schemas.AdminCache
	if err := json.Unmarshal([]byte(raw), &cache); err != nil {
		log.Warnf("Discarding unreadable admin cache: %v", err)
		return nil, false
	}
	return &cache, true
}

func (sm *StorageManager) SetAdminCache(ctx context.Context, cache schemas.AdminCache) error {
	raw, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("encode admin cache: %w", err)
	}
	return sm.store.Set(ctx, AdminCacheKey, string(raw))
}

func (sm *StorageManager) ClearAdminCache(ctx context.Context) error {
	return sm.store.Delete(ctx, AdminCacheKey)
}

// ClearSession removes the credentials, the saved user and the admin cache.
// The dark-mode preference survives.
func (sm *StorageManager) ClearSession(ctx context.Context) error {
	return sm.store.Delete(ctx, AccessTokenKey, RefreshTokenKey, SavedUserKey, AdminCacheKey)
}
