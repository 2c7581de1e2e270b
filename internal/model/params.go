package model

// Parameters is the category-shaped payload of a record. Exactly one field
// is non-nil and it always matches the record's Type, so a capacity record
// can never carry temporal fields and vice versa.
type Parameters struct {
	Temporal   *TemporalParams   `json:"temporal,omitempty"`
	Capacity   *CapacityParams   `json:"capacity,omitempty"`
	Location   *LocationParams   `json:"location,omitempty"`
	Rest       *RestParams       `json:"rest,omitempty"`
	Preference *PreferenceParams `json:"preference,omitempty"`
}

// Kind reports which shape is populated, or TypeUnknown when none is.
func (p Parameters) Kind() ConstraintType {
	switch {
	case p.Temporal != nil:
		return TypeTemporal
	case p.Capacity != nil:
		return TypeCapacity
	case p.Location != nil:
		return TypeLocation
	case p.Rest != nil:
		return TypeRest
	case p.Preference != nil:
		return TypePreference
	default:
		return TypeUnknown
	}
}

// TemporalParams covers day/time restrictions
type TemporalParams struct {
	DaysOfWeek    []string `json:"days_of_week"`    // Lowercase singular, deduplicated
	ExcludedDates []string `json:"excluded_dates"`
	TimeRanges    []string `json:"time_ranges"`
	BeforeTime    string   `json:"before_time,omitempty"`
	AfterTime     string   `json:"after_time,omitempty"`
}

// CapacityParams covers numeric limits on a resource. At most one of the
// Max fields is set: the first matching limit pattern wins, and multi-limit
// inputs are expected to be pre-segmented rather than parsed jointly.
type CapacityParams struct {
	Resource      string `json:"resource"` // Defaults to "games"
	MaxPerDay     *int   `json:"max_per_day,omitempty"`
	MaxPerWeek    *int   `json:"max_per_week,omitempty"`
	MaxConcurrent *int   `json:"max_concurrent,omitempty"`
	MinCount      *int   `json:"min_count,omitempty"`
}

// Max returns whichever maximum limit is set, if any.
func (c *CapacityParams) Max() (int, bool) {
	switch {
	case c.MaxPerDay != nil:
		return *c.MaxPerDay, true
	case c.MaxPerWeek != nil:
		return *c.MaxPerWeek, true
	case c.MaxConcurrent != nil:
		return *c.MaxConcurrent, true
	default:
		return 0, false
	}
}

// LocationParams covers venue requirements. No venue heuristics beyond
// entity carry-over are applied; venues arrive from the entity extractor.
type LocationParams struct {
	RequiredVenue     string   `json:"required_venue,omitempty"`
	ExcludedVenues    []string `json:"excluded_venues"`
	HomeVenueRequired bool     `json:"home_venue_required"`
}

// RestParams covers minimum gaps between games
type RestParams struct {
	MinDays      *int `json:"min_days,omitempty"`
	MinHours     *int `json:"min_hours,omitempty"`
	BetweenGames bool `json:"between_games"`
}

// PreferenceParams covers soft constraints
type PreferenceParams struct {
	PreferredDays  []string `json:"preferred_days"`
	PreferredTimes []string `json:"preferred_times"`
	Weight         float64  `json:"weight"` // Defaults to 0.5
}
