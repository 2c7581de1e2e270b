package params

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// Parser extracts category-shaped parameters from lowercased constraint
// text. The shape returned always matches the category: a capacity record
// can never come back with temporal fields.
type Parser struct{}

// NewParser creates a parameter parser
func NewParser() *Parser {
	return &Parser{}
}

var dayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var (
	// Ordered maximum patterns: the first match wins even when several
	// numeric limits appear. Multi-limit constraints are expected to be
	// pre-segmented rather than parsed jointly.
	maxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`no more than (\d+)`),
		regexp.MustCompile(`maximum (\d+)`),
		regexp.MustCompile(`at most (\d+)`),
		regexp.MustCompile(`(\d+) or fewer`),
	}

	minPatterns = []*regexp.Regexp{
		regexp.MustCompile(`at least (\d+)`),
		regexp.MustCompile(`minimum (\d+)`),
		regexp.MustCompile(`(\d+) or more`),
	}

	beforeTimePattern = regexp.MustCompile(`before\s+(\d{1,2}:\d{2}\s*(?:am|pm)?|\d{1,2}\s*(?:am|pm))`)
	afterTimePattern  = regexp.MustCompile(`after\s+(\d{1,2}:\d{2}\s*(?:am|pm)?|\d{1,2}\s*(?:am|pm))`)
	timeRangePattern  = regexp.MustCompile(`(\d{1,2}(?::\d{2})?\s*(?:am|pm)?\s*(?:-|to)\s*\d{1,2}(?::\d{2})?\s*(?:am|pm))`)

	restDaysPattern  = regexp.MustCompile(`(\d+)\s+days?\s+between`)
	restHoursPattern = regexp.MustCompile(`(\d+)\s+hours?\s+between`)
)

// Parse extracts the parameter shape for the given category
func (p *Parser) Parse(text string, category model.ConstraintType, entities []model.Entity) model.Parameters {
	lower := strings.ToLower(text)

	switch category {
	case model.TypeTemporal:
		return model.Parameters{Temporal: p.temporal(lower, entities)}
	case model.TypeCapacity:
		return model.Parameters{Capacity: p.capacity(lower)}
	case model.TypeLocation:
		return model.Parameters{Location: p.location(lower, entities)}
	case model.TypeRest:
		return model.Parameters{Rest: p.rest(lower)}
	case model.TypePreference:
		return model.Parameters{Preference: p.preference(entities)}
	default:
		return model.Parameters{}
	}
}

func (p *Parser) temporal(lower string, entities []model.Entity) *model.TemporalParams {
	t := &model.TemporalParams{
		DaysOfWeek:    []string{},
		ExcludedDates: []string{},
		TimeRanges:    []string{},
	}

	for _, day := range dayNames {
		if strings.Contains(lower, day) {
			t.DaysOfWeek = append(t.DaysOfWeek, day)
		}
	}

	// Date entities become exclusions only under a negation cue
	if strings.Contains(lower, "not") || strings.Contains(lower, "cannot") || strings.Contains(lower, "except") {
		for _, e := range entities {
			if e.Type == model.EntityDate {
				t.ExcludedDates = append(t.ExcludedDates, e.Value)
			}
		}
	}

	t.TimeRanges = append(t.TimeRanges, timeRangePattern.FindAllString(lower, -1)...)

	if m := beforeTimePattern.FindStringSubmatch(lower); m != nil {
		t.BeforeTime = m[1]
	}
	if m := afterTimePattern.FindStringSubmatch(lower); m != nil {
		t.AfterTime = m[1]
	}

	return t
}

func (p *Parser) capacity(lower string) *model.CapacityParams {
	c := &model.CapacityParams{
		Resource: resourceFromText(lower),
	}

	for _, pattern := range maxPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		// Disambiguate by period substring; no period means a
		// concurrency limit.
		switch {
		case strings.Contains(lower, "per day"):
			c.MaxPerDay = &n
		case strings.Contains(lower, "per week"):
			c.MaxPerWeek = &n
		default:
			c.MaxConcurrent = &n
		}
		break
	}

	for _, pattern := range minPatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil {
			c.MinCount = &n
		}
		break
	}

	return c
}

func resourceFromText(lower string) string {
	switch {
	case strings.Contains(lower, "match"):
		return "matches"
	case strings.Contains(lower, "practice"):
		return "practices"
	default:
		return "games"
	}
}

func (p *Parser) location(lower string, entities []model.Entity) *model.LocationParams {
	l := &model.LocationParams{
		ExcludedVenues: []string{},
	}

	// Venue values carry over from the entity extractor; no additional
	// venue heuristics are applied.
	var venues []string
	for _, e := range entities {
		if e.Type == model.EntityVenue {
			venues = append(venues, e.Value)
		}
	}

	negated := strings.Contains(lower, "cannot") || strings.Contains(lower, "not ")
	switch {
	case negated:
		l.ExcludedVenues = append(l.ExcludedVenues, venues...)
	case len(venues) > 0 && (strings.Contains(lower, "must") || strings.Contains(lower, "only")):
		l.RequiredVenue = venues[0]
	}

	if strings.Contains(lower, "home") && (strings.Contains(lower, "must") || strings.Contains(lower, "require")) {
		l.HomeVenueRequired = true
	}

	return l
}

func (p *Parser) rest(lower string) *model.RestParams {
	r := &model.RestParams{
		BetweenGames: true,
	}

	if m := restDaysPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			r.MinDays = &n
		}
	}
	if m := restHoursPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			r.MinHours = &n
		}
	}

	return r
}

func (p *Parser) preference(entities []model.Entity) *model.PreferenceParams {
	pref := &model.PreferenceParams{
		PreferredDays:  []string{},
		PreferredTimes: []string{},
		Weight:         0.5,
	}

	for _, e := range entities {
		switch e.Type {
		case model.EntityDayOfWeek:
			pref.PreferredDays = append(pref.PreferredDays, e.Value)
		case model.EntityTime:
			pref.PreferredTimes = append(pref.PreferredTimes, e.Value)
		}
	}

	return pref
}
