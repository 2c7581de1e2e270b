package params

import (
	"reflect"
	"testing"

	"github.com/leagueworks/schedparse/internal/model"
)

func TestParser_CapacityMaxPerDay(t *testing.T) {
	p := NewParser()

	params := p.Parse("No more than 3 games per day", model.TypeCapacity, nil)
	c := params.Capacity
	if c == nil {
		t.Fatal("expected capacity params")
	}
	if c.MaxPerDay == nil || *c.MaxPerDay != 3 {
		t.Errorf("expected max_per_day 3, got %+v", c)
	}
	if c.MaxPerWeek != nil || c.MaxConcurrent != nil {
		t.Errorf("only max_per_day should be set, got %+v", c)
	}
	if c.Resource != "games" {
		t.Errorf("expected resource games, got %q", c.Resource)
	}
}

func TestParser_CapacityMaxPerWeek(t *testing.T) {
	p := NewParser()

	params := p.Parse("Maximum 2 matches per week for each team", model.TypeCapacity, nil)
	c := params.Capacity
	if c == nil {
		t.Fatal("expected capacity params")
	}
	if c.MaxPerWeek == nil || *c.MaxPerWeek != 2 {
		t.Errorf("expected max_per_week 2, got %+v", c)
	}
	if c.Resource != "matches" {
		t.Errorf("expected resource matches, got %q", c.Resource)
	}
}

func TestParser_CapacityConcurrentWithoutPeriod(t *testing.T) {
	p := NewParser()

	params := p.Parse("At most 4 games on Field 1", model.TypeCapacity, nil)
	c := params.Capacity
	if c == nil {
		t.Fatal("expected capacity params")
	}
	if c.MaxConcurrent == nil || *c.MaxConcurrent != 4 {
		t.Errorf("expected max_concurrent 4 when no period given, got %+v", c)
	}
}

func TestParser_CapacityMinCount(t *testing.T) {
	p := NewParser()

	params := p.Parse("At least 2 practices per week", model.TypeCapacity, nil)
	c := params.Capacity
	if c == nil {
		t.Fatal("expected capacity params")
	}
	if c.MinCount == nil || *c.MinCount != 2 {
		t.Errorf("expected min_count 2, got %+v", c)
	}
	if c.Resource != "practices" {
		t.Errorf("expected resource practices, got %q", c.Resource)
	}
}

func TestParser_CapacityMax(t *testing.T) {
	n := 3
	c := &model.CapacityParams{MaxPerDay: &n}
	if max, ok := c.Max(); !ok || max != 3 {
		t.Errorf("expected Max() = 3, got %d ok=%v", max, ok)
	}
	if _, ok := (&model.CapacityParams{}).Max(); ok {
		t.Error("expected no max on empty params")
	}
}

func TestParser_TemporalDays(t *testing.T) {
	p := NewParser()

	params := p.Parse("Team A cannot play on Mondays or Wednesdays", model.TypeTemporal, nil)
	tp := params.Temporal
	if tp == nil {
		t.Fatal("expected temporal params")
	}
	if !reflect.DeepEqual(tp.DaysOfWeek, []string{"monday", "wednesday"}) {
		t.Errorf("expected [monday wednesday], got %v", tp.DaysOfWeek)
	}
}

func TestParser_TemporalBeforeAfter(t *testing.T) {
	p := NewParser()

	params := p.Parse("Games must end before 9pm", model.TypeTemporal, nil)
	if params.Temporal == nil || params.Temporal.BeforeTime != "9pm" {
		t.Errorf("expected before_time 9pm, got %+v", params.Temporal)
	}

	params = p.Parse("Games must start after 8:30 am", model.TypeTemporal, nil)
	if params.Temporal == nil || params.Temporal.AfterTime != "8:30 am" {
		t.Errorf("expected after_time 8:30 am, got %+v", params.Temporal)
	}
}

func TestParser_TemporalExcludedDates(t *testing.T) {
	p := NewParser()

	entities := []model.Entity{
		{Type: model.EntityDate, Value: "12/25", Confidence: 0.85},
	}

	params := p.Parse("Games cannot be scheduled on 12/25", model.TypeTemporal, entities)
	tp := params.Temporal
	if tp == nil {
		t.Fatal("expected temporal params")
	}
	if !reflect.DeepEqual(tp.ExcludedDates, []string{"12/25"}) {
		t.Errorf("expected excluded date 12/25, got %v", tp.ExcludedDates)
	}

	// Without a negation cue the date is not an exclusion
	params = p.Parse("Games happen on 12/25", model.TypeTemporal, entities)
	if len(params.Temporal.ExcludedDates) != 0 {
		t.Errorf("expected no exclusions without negation, got %v", params.Temporal.ExcludedDates)
	}
}

func TestParser_RestDays(t *testing.T) {
	p := NewParser()

	params := p.Parse("Teams need at least 2 days between games", model.TypeRest, nil)
	r := params.Rest
	if r == nil {
		t.Fatal("expected rest params")
	}
	if r.MinDays == nil || *r.MinDays != 2 {
		t.Errorf("expected min_days 2, got %+v", r)
	}
	if !r.BetweenGames {
		t.Error("expected between_games true")
	}
}

func TestParser_RestHours(t *testing.T) {
	p := NewParser()

	params := p.Parse("48 hours between matches for every club", model.TypeRest, nil)
	r := params.Rest
	if r == nil {
		t.Fatal("expected rest params")
	}
	if r.MinHours == nil || *r.MinHours != 48 {
		t.Errorf("expected min_hours 48, got %+v", r)
	}
}

func TestParser_LocationExcluded(t *testing.T) {
	p := NewParser()

	entities := []model.Entity{
		{Type: model.EntityVenue, Value: "Field 2", Confidence: 0.9},
	}

	params := p.Parse("Team B cannot play at Field 2", model.TypeLocation, entities)
	l := params.Location
	if l == nil {
		t.Fatal("expected location params")
	}
	if !reflect.DeepEqual(l.ExcludedVenues, []string{"Field 2"}) {
		t.Errorf("expected Field 2 excluded, got %v", l.ExcludedVenues)
	}
	if l.RequiredVenue != "" {
		t.Errorf("expected no required venue, got %q", l.RequiredVenue)
	}
}

func TestParser_LocationRequired(t *testing.T) {
	p := NewParser()

	entities := []model.Entity{
		{Type: model.EntityVenue, Value: "Court 3", Confidence: 0.9},
	}

	params := p.Parse("Finals must be played at Court 3", model.TypeLocation, entities)
	if params.Location == nil || params.Location.RequiredVenue != "Court 3" {
		t.Errorf("expected required venue Court 3, got %+v", params.Location)
	}
}

func TestParser_LocationHomeRequired(t *testing.T) {
	p := NewParser()

	params := p.Parse("Seniors must use their home ground", model.TypeLocation, nil)
	if params.Location == nil || !params.Location.HomeVenueRequired {
		t.Errorf("expected home venue required, got %+v", params.Location)
	}
}

func TestParser_PreferenceDefaults(t *testing.T) {
	p := NewParser()

	entities := []model.Entity{
		{Type: model.EntityDayOfWeek, Value: "saturday", Confidence: 0.95},
		{Type: model.EntityTime, Value: "10:00 AM", Confidence: 0.9},
	}

	params := p.Parse("Team C prefers Saturdays at 10:00 AM", model.TypePreference, entities)
	pref := params.Preference
	if pref == nil {
		t.Fatal("expected preference params")
	}
	if pref.Weight != 0.5 {
		t.Errorf("expected default weight 0.5, got %f", pref.Weight)
	}
	if !reflect.DeepEqual(pref.PreferredDays, []string{"saturday"}) {
		t.Errorf("expected preferred day saturday, got %v", pref.PreferredDays)
	}
	if !reflect.DeepEqual(pref.PreferredTimes, []string{"10:00 AM"}) {
		t.Errorf("expected preferred time, got %v", pref.PreferredTimes)
	}
}

func TestParser_ShapeMatchesCategory(t *testing.T) {
	p := NewParser()

	params := p.Parse("No more than 3 games per day", model.TypeCapacity, nil)
	if params.Kind() != model.TypeCapacity {
		t.Errorf("expected capacity shape, got %s", params.Kind())
	}
	if params.Temporal != nil || params.Location != nil || params.Rest != nil || params.Preference != nil {
		t.Errorf("exactly one shape must be populated: %+v", params)
	}

	if kind := p.Parse("anything", model.TypeUnknown, nil).Kind(); kind != model.TypeUnknown {
		t.Errorf("expected empty shape for unknown category, got %s", kind)
	}
}
