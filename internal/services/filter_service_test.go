package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"busfinder/internal/cache"
	"busfinder/internal/domain"
	"busfinder/internal/domain/models"
)

type fakeLoader struct {
	calls int
	opts  models.FormOptions
	err   error
}

func (f *fakeLoader) LoadOptions(context.Context) (models.FormOptions, error) {
	f.calls++
	if f.err != nil {
		return models.FormOptions{}, f.err
	}
	return f.opts, nil
}

func southOptions() models.FormOptions {
	return models.FormOptions{
		States:     []string{"Karnataka", "Kerala"},
		FromPlaces: []string{"Bengaluru", "Kochi"},
		ToPlaces:   []string{"Chennai", "Mysuru"},
	}
}

func ptr[T any](v T) *T { return &v }

func TestOptionsLoadedOnceAfterWarm(t *testing.T) {
	loader := &fakeLoader{opts: southOptions()}
	svc := NewFilterService(loader, cache.NewMemoryStore(0))
	ctx := context.Background()

	if err := svc.Warm(ctx); err != nil {
		t.Fatalf("Warm error: %v", err)
	}
	for i := 0; i < 3; i++ {
		opts, err := svc.Options(ctx)
		if err != nil {
			t.Fatalf("Options error: %v", err)
		}
		if len(opts.States) != 2 || opts.Controls != models.DefaultControls {
			t.Fatalf("unexpected options %+v", opts)
		}
	}
	if loader.calls != 1 {
		t.Fatalf("expected a single load, got %d", loader.calls)
	}
}

func TestOptionsServesPreviousLoadWhenReloadFails(t *testing.T) {
	now := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	store := cache.NewMemoryStore(time.Minute)
	store.Now = func() time.Time { return now }

	loader := &fakeLoader{opts: southOptions()}
	svc := NewFilterService(loader, store)
	ctx := context.Background()
	if err := svc.Warm(ctx); err != nil {
		t.Fatalf("Warm error: %v", err)
	}

	now = now.Add(2 * time.Minute)
	loader.err = errors.New("connection refused")

	opts, err := svc.Options(ctx)
	if err != nil {
		t.Fatalf("expected stale options, got error %v", err)
	}
	if opts.States[0] != "Karnataka" {
		t.Fatalf("unexpected stale options %+v", opts)
	}
	if loader.calls != 2 {
		t.Fatalf("expected a reload attempt, got %d calls", loader.calls)
	}
}

func TestOptionsColdFailureIsReported(t *testing.T) {
	loader := &fakeLoader{err: domain.QueryExecutionError{Err: errors.New("down")}}
	svc := NewFilterService(loader, nil)
	if _, err := svc.Options(context.Background()); !domain.IsQueryExecution(err) {
		t.Fatalf("expected QueryExecutionError, got %v", err)
	}
}

func TestCollectAppliesDefaults(t *testing.T) {
	svc := NewFilterService(&fakeLoader{opts: southOptions()}, nil)

	c, err := svc.Collect(context.Background(), models.FilterForm{})
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	want := models.FilterCriteria{
		State:     "Karnataka",
		FromPlace: "Bengaluru",
		ToPlace:   "Chennai",
		MinRating: 3.0,
		AfterHour: 18,
		Price:     models.PriceRange{Min: 300, Max: 2000},
	}
	if c != want {
		t.Fatalf("criteria = %+v, want %+v", c, want)
	}
}

func TestCollectKeepsSubmittedValues(t *testing.T) {
	loader := &fakeLoader{opts: southOptions()}
	svc := NewFilterService(loader, nil)

	c, err := svc.Collect(context.Background(), models.FilterForm{
		State:     " Kerala ",
		FromPlace: "Kochi",
		ToPlace:   "Mysuru",
		MinRating: ptr(0.0),
		AfterHour: ptr(0),
		PriceMin:  ptr(100),
		PriceMax:  ptr(5000),
	})
	if err != nil {
		t.Fatalf("Collect error: %v", err)
	}
	if c.State != "Kerala" || c.MinRating != 0 || c.AfterHour != 0 || c.Price.Min != 100 || c.Price.Max != 5000 {
		t.Fatalf("unexpected criteria %+v", c)
	}
	if loader.calls != 0 {
		t.Fatalf("fully specified form should not need the options, loader called %d times", loader.calls)
	}
}

func TestCollectRejectsOutOfBounds(t *testing.T) {
	svc := NewFilterService(&fakeLoader{opts: southOptions()}, nil)
	forms := []models.FilterForm{
		{MinRating: ptr(5.5)},
		{AfterHour: ptr(-1)},
		{PriceMin: ptr(2500), PriceMax: ptr(400)},
		{PriceMax: ptr(9000)},
		{MinRating: ptr(math.NaN())},
		{MinRating: ptr(math.Inf(-1))},
	}
	for i, f := range forms {
		if _, err := svc.Collect(context.Background(), f); !domain.IsValidation(err) {
			t.Fatalf("form %d: expected ValidationError, got %v", i, err)
		}
	}
}

func TestCollectEmptyDomain(t *testing.T) {
	opts := southOptions()
	opts.ToPlaces = nil
	svc := NewFilterService(&fakeLoader{opts: opts}, nil)

	_, err := svc.Collect(context.Background(), models.FilterForm{State: "Kerala", FromPlace: "Kochi"})
	var ve domain.ValidationError
	if !errors.As(err, &ve) || ve.Field != "to_place" {
		t.Fatalf("expected to_place ValidationError, got %v", err)
	}
}
