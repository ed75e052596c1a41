package models

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"busfinder/internal/domain"
	"busfinder/internal/utils"
)

// FilterForm is one raw submission. Nil numeric fields and blank
// enumerated fields mean "use the control default".
type FilterForm struct {
	State     string   `form:"state" json:"state"`
	FromPlace string   `form:"from_place" json:"from_place"`
	ToPlace   string   `form:"to_place" json:"to_place"`
	MinRating *float64 `form:"min_rating" json:"min_rating"`
	AfterHour *int     `form:"after_hour" json:"after_hour"`
	PriceMin  *int     `form:"price_min" json:"price_min"`
	PriceMax  *int     `form:"price_max" json:"price_max"`
}

// BlankAsMissing clears numeric fields that were submitted empty. Form
// binding turns "min_rating=" into 0; an empty control should instead fall
// back to its default like an absent one.
func (f *FilterForm) BlankAsMissing(values url.Values) {
	blank := func(key string) bool {
		vs, ok := values[key]
		return ok && (len(vs) == 0 || strings.TrimSpace(vs[0]) == "")
	}
	if blank("min_rating") {
		f.MinRating = nil
	}
	if blank("after_hour") {
		f.AfterHour = nil
	}
	if blank("price_min") {
		f.PriceMin = nil
	}
	if blank("price_max") {
		f.PriceMax = nil
	}
}

type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterCriteria is the committed, fully populated filter of one submission.
type FilterCriteria struct {
	State     string     `json:"state"`
	FromPlace string     `json:"from_place"`
	ToPlace   string     `json:"to_place"`
	MinRating float64    `json:"min_rating"`
	AfterHour int        `json:"after_hour"`
	Price     PriceRange `json:"price"`
}

// Boundary is the departure time a matching bus must leave strictly after.
func (c FilterCriteria) Boundary() string {
	return utils.HourBoundary(c.AfterHour)
}

// Validate checks c against the control bounds in ctl.
func (c FilterCriteria) Validate(ctl Controls) error {
	switch {
	case c.State == "":
		return domain.ValidationError{Field: "state", Msg: "required"}
	case c.FromPlace == "":
		return domain.ValidationError{Field: "from_place", Msg: "required"}
	case c.ToPlace == "":
		return domain.ValidationError{Field: "to_place", Msg: "required"}
	}
	if math.IsNaN(c.MinRating) || math.IsInf(c.MinRating, 0) {
		return domain.ValidationError{Field: "min_rating", Msg: "must be a number"}
	}
	if c.MinRating < ctl.Rating.Min || c.MinRating > ctl.Rating.Max {
		return domain.ValidationError{Field: "min_rating", Msg: fmt.Sprintf("must be between %.1f and %.1f", ctl.Rating.Min, ctl.Rating.Max)}
	}
	if c.AfterHour < ctl.Hour.Min || c.AfterHour > ctl.Hour.Max {
		return domain.ValidationError{Field: "after_hour", Msg: fmt.Sprintf("must be between %d and %d", ctl.Hour.Min, ctl.Hour.Max)}
	}
	if c.Price.Min < ctl.Price.Min || c.Price.Max > ctl.Price.Max {
		return domain.ValidationError{Field: "price", Msg: fmt.Sprintf("must be within %d-%d", ctl.Price.Min, ctl.Price.Max)}
	}
	if c.Price.Min > c.Price.Max {
		return domain.ValidationError{Field: "price", Msg: "min must not exceed max"}
	}
	return nil
}

// Admits evaluates the search predicate against one stored row in Go. It
// must agree with the SQL built by the bus repository; results coming back
// from the store are never re-filtered with it.
func (c FilterCriteria) Admits(row BusRow, currencyPrefix string) (bool, error) {
	if !utils.SameText(row.State, c.State) ||
		!utils.SameText(row.FromPlace, c.FromPlace) ||
		!utils.SameText(row.ToPlace, c.ToPlace) {
		return false, nil
	}
	if row.Rating < c.MinRating {
		return false, nil
	}

	dep, err := utils.ParseClock(row.DepartureTime)
	if err != nil {
		return false, domain.QueryExecutionError{Err: fmt.Errorf("departure time %q: %w", row.DepartureTime, err)}
	}
	boundary, err := utils.ParseClock(c.Boundary())
	if err != nil {
		return false, domain.QueryExecutionError{Err: err}
	}
	if dep <= boundary {
		return false, nil
	}

	paise, err := utils.ParseTicketPrice(row.TicketPrice, currencyPrefix)
	if err != nil {
		return false, domain.QueryExecutionError{Err: err}
	}
	return paise >= int64(c.Price.Min)*100 && paise <= int64(c.Price.Max)*100, nil
}
