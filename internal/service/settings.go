package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/repository"
)

// Settings keys understood by the storefront. Missing rows fall back to the
// compiled-in defaults, never to an error.
const (
	SettingShippingDhaka        = "shippingDhaka"
	SettingShippingOutside      = "shippingOutside"
	SettingFreeShippingMinimum  = "freeShippingMinimum"
	SettingLowStockThreshold    = "lowStockThreshold"
	SettingBkashNumber          = "bkashNumber"
	SettingNagadNumber          = "nagadNumber"
	SettingRocketNumber         = "rocketNumber"
	SettingMetaPixelID          = "metaPixelId"
	SettingMetaPixelEnabled     = "metaPixelEnabled"
	SettingMetaCapiAccessToken  = "metaCapiAccessToken"
	SettingGTMContainerID       = "gtmContainerId"
	SettingAnnouncementEnabled  = "announcementEnabled"
	SettingAnnouncementMessage  = "announcementMessage"
	SettingAnnouncementLink     = "announcementLink"
	SettingAnnouncementLinkText = "announcementLinkText"
)

var settingsDefaults = map[string]string{
	SettingShippingDhaka:        "70",
	SettingShippingOutside:      "130",
	SettingFreeShippingMinimum:  "0",
	SettingLowStockThreshold:    "5",
	SettingBkashNumber:          "",
	SettingNagadNumber:          "",
	SettingRocketNumber:         "",
	SettingMetaPixelID:          "",
	SettingMetaPixelEnabled:     "false",
	SettingMetaCapiAccessToken:  "",
	SettingGTMContainerID:       "",
	SettingAnnouncementEnabled:  "false",
	SettingAnnouncementMessage:  "",
	SettingAnnouncementLink:     "",
	SettingAnnouncementLinkText: "",
}

// SettingsStore is the persistence surface the settings service needs.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

// SettingsService is a read-through cache over the settings table. Writes go
// through Set, which refreshes the cached entry, so stale reads only happen
// if another process writes the table directly (Invalidate covers that).
type SettingsService struct {
	store  SettingsStore
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]string
}

func NewSettingsService(store SettingsStore, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		logger: logger,
		cache:  make(map[string]string),
	}
}

// Get returns the stored value for key, or its compiled-in default when no
// row exists or the store is unreadable.
func (s *SettingsService) Get(ctx context.Context, key string) string {
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v
	}
	s.mu.RUnlock()

	v, err := s.store.Get(ctx, key)
	if err != nil {
		def := settingsDefaults[key]
		// A missing row is a stable answer worth caching; a store failure
		// is not, so the next read retries.
		if errors.Is(err, repository.ErrNotFound) {
			s.mu.Lock()
			s.cache[key] = def
			s.mu.Unlock()
		}
		return def
	}

	s.mu.Lock()
	s.cache[key] = v
	s.mu.Unlock()
	return v
}

func (s *SettingsService) GetInt(ctx context.Context, key string) int {
	if n, err := strconv.Atoi(s.Get(ctx, key)); err == nil {
		return n
	}
	n, _ := strconv.Atoi(settingsDefaults[key])
	return n
}

func (s *SettingsService) GetFloat(ctx context.Context, key string) float64 {
	if f, err := strconv.ParseFloat(s.Get(ctx, key), 64); err == nil {
		return f
	}
	f, _ := strconv.ParseFloat(settingsDefaults[key], 64)
	return f
}

func (s *SettingsService) GetBool(ctx context.Context, key string) bool {
	b, err := strconv.ParseBool(s.Get(ctx, key))
	if err != nil {
		b, _ = strconv.ParseBool(settingsDefaults[key])
	}
	return b
}

// GetAll returns the defaults overlaid with every stored override.
func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	stored, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settingsDefaults))
	for k, v := range settingsDefaults {
		out[k] = v
	}
	for k, v := range stored {
		out[k] = v
	}
	return out, nil
}

// Set writes through the store and refreshes the cache entry.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, key, value); err != nil {
		return err
	}
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}

// Invalidate drops the whole cache. Used after bulk updates and by anything
// that mutates settings out of band.
func (s *SettingsService) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}
