package models

import "time"

// FormOptions feeds the filter form: the three enumerated domains plus the
// numeric control bounds.
type FormOptions struct {
	States     []string  `json:"states"`
	FromPlaces []string  `json:"from_places"`
	ToPlaces   []string  `json:"to_places"`
	Controls   Controls  `json:"controls"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// Submittable is false when any enumerated domain is empty; the form then
// has nothing to select and submission is disabled.
func (o FormOptions) Submittable() bool {
	return len(o.States) > 0 && len(o.FromPlaces) > 0 && len(o.ToPlaces) > 0
}

type RatingControl struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

type HourControl struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Step    int `json:"step"`
	Default int `json:"default"`
}

type PriceControl struct {
	Min        int `json:"min"`
	Max        int `json:"max"`
	Step       int `json:"step"`
	DefaultMin int `json:"default_min"`
	DefaultMax int `json:"default_max"`
}

type Controls struct {
	Rating RatingControl `json:"rating"`
	Hour   HourControl   `json:"hour"`
	Price  PriceControl  `json:"price"`
}

// DefaultControls mirrors the sliders of the filter form.
var DefaultControls = Controls{
	Rating: RatingControl{Min: 0.0, Max: 5.0, Step: 0.1, Default: 3.0},
	Hour:   HourControl{Min: 0, Max: 23, Step: 1, Default: 18},
	Price:  PriceControl{Min: 100, Max: 5000, Step: 100, DefaultMin: 300, DefaultMax: 2000},
}
