package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"busfinder/internal/cache"
	"busfinder/internal/domain"
	"busfinder/internal/domain/models"
	"busfinder/internal/utils"
)

// OptionsLoader reads the enumerated domains from the store.
type OptionsLoader interface {
	LoadOptions(ctx context.Context) (models.FormOptions, error)
}

// FilterService collects filter submissions. It owns the enumerated-domain
// cache: options are loaded when the service starts (Warm), on an explicit
// Refresh, and when the cache entry expires. A failed load never discards
// the last successful one.
type FilterService struct {
	Loader   OptionsLoader
	Cache    cache.Store
	Controls models.Controls

	mu       sync.RWMutex
	lastGood *models.FormOptions
}

func NewFilterService(loader OptionsLoader, store cache.Store) *FilterService {
	if store == nil {
		store = cache.NewMemoryStore(0)
	}
	return &FilterService{Loader: loader, Cache: store, Controls: models.DefaultControls}
}

// Warm loads the options at session start.
func (s *FilterService) Warm(ctx context.Context) error {
	_, err := s.Refresh(ctx)
	return err
}

// Refresh reloads the options from the store and replaces the cache entry.
func (s *FilterService) Refresh(ctx context.Context) (models.FormOptions, error) {
	reqID := utils.RequestIDFrom(ctx)
	opts, err := s.Loader.LoadOptions(ctx)
	if err != nil {
		utils.LogFailure(reqID, "filter", "load_options", err)
		return models.FormOptions{}, err
	}
	opts.Controls = s.Controls

	if err := s.Cache.Invalidate(ctx); err != nil {
		utils.LogFailure(reqID, "filter", "invalidate_options", err)
	}
	if err := s.Cache.Set(ctx, opts); err != nil {
		utils.LogFailure(reqID, "filter", "cache_options", err)
	}
	s.remember(opts)

	utils.LogEvent(reqID, "filter", "load_options", fmt.Sprintf("states=%d from=%d to=%d",
		len(opts.States), len(opts.FromPlaces), len(opts.ToPlaces)))
	return opts, nil
}

// Options returns the cached options, loading them when the cache is cold.
// When that load fails the previous successful load is served instead.
func (s *FilterService) Options(ctx context.Context) (models.FormOptions, error) {
	reqID := utils.RequestIDFrom(ctx)
	opts, ok, err := s.Cache.Get(ctx)
	if err != nil {
		utils.LogFailure(reqID, "filter", "read_options_cache", err)
	}
	if ok {
		return opts, nil
	}

	opts, err = s.Refresh(ctx)
	if err == nil {
		return opts, nil
	}
	if prev, ok := s.previous(); ok {
		utils.LogEvent(reqID, "filter", "serve_stale_options", "reload failed, serving previous options")
		return prev, nil
	}
	return models.FormOptions{}, err
}

func (s *FilterService) remember(opts models.FormOptions) {
	s.mu.Lock()
	s.lastGood = &opts
	s.mu.Unlock()
}

func (s *FilterService) previous() (models.FormOptions, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastGood == nil {
		return models.FormOptions{}, false
	}
	return *s.lastGood, true
}

// Collect turns a submitted form into criteria. Blank numeric fields take
// the control defaults; blank enumerated fields take the first option of
// their domain, the way a select control preselects its first entry.
func (s *FilterService) Collect(ctx context.Context, form models.FilterForm) (models.FilterCriteria, error) {
	ctl := s.Controls
	c := models.FilterCriteria{
		State:     utils.TrimOrEmpty(form.State),
		FromPlace: utils.TrimOrEmpty(form.FromPlace),
		ToPlace:   utils.TrimOrEmpty(form.ToPlace),
		MinRating: ctl.Rating.Default,
		AfterHour: ctl.Hour.Default,
		Price:     models.PriceRange{Min: ctl.Price.DefaultMin, Max: ctl.Price.DefaultMax},
	}
	if form.MinRating != nil {
		c.MinRating = *form.MinRating
	}
	if form.AfterHour != nil {
		c.AfterHour = *form.AfterHour
	}
	if form.PriceMin != nil {
		c.Price.Min = *form.PriceMin
	}
	if form.PriceMax != nil {
		c.Price.Max = *form.PriceMax
	}

	if c.State == "" || c.FromPlace == "" || c.ToPlace == "" {
		opts, err := s.Options(ctx)
		if err != nil {
			return models.FilterCriteria{}, err
		}
		if c.State, err = firstOption("state", c.State, opts.States); err != nil {
			return models.FilterCriteria{}, err
		}
		if c.FromPlace, err = firstOption("from_place", c.FromPlace, opts.FromPlaces); err != nil {
			return models.FilterCriteria{}, err
		}
		if c.ToPlace, err = firstOption("to_place", c.ToPlace, opts.ToPlaces); err != nil {
			return models.FilterCriteria{}, err
		}
	}

	if err := c.Validate(ctl); err != nil {
		return models.FilterCriteria{}, err
	}
	return c, nil
}

func firstOption(field, current string, domainValues []string) (string, error) {
	if strings.TrimSpace(current) != "" {
		return current, nil
	}
	if len(domainValues) == 0 {
		return "", domain.ValidationError{Field: field, Msg: "no options available"}
	}
	return domainValues[0], nil
}
