package params

import (
	"fmt"
	"strings"

	"github.com/leagueworks/schedparse/internal/model"
)

// Describe reconstructs an English sentence from a parameter shape. The
// output is written so that re-parsing it yields the same constraint type
// and the same numeric parameters, which makes parsed records auditable by
// feeding them back through the pipeline.
func Describe(p model.Parameters) string {
	switch p.Kind() {
	case model.TypeCapacity:
		return describeCapacity(p.Capacity)
	case model.TypeRest:
		return describeRest(p.Rest)
	case model.TypeTemporal:
		return describeTemporal(p.Temporal)
	default:
		return ""
	}
}

func describeCapacity(c *model.CapacityParams) string {
	resource := c.Resource
	if resource == "" {
		resource = "games"
	}

	switch {
	case c.MaxPerDay != nil:
		return fmt.Sprintf("No more than %d %s per day", *c.MaxPerDay, resource)
	case c.MaxPerWeek != nil:
		return fmt.Sprintf("No more than %d %s per week", *c.MaxPerWeek, resource)
	case c.MaxConcurrent != nil:
		return fmt.Sprintf("No more than %d %s at the same time", *c.MaxConcurrent, resource)
	case c.MinCount != nil:
		return fmt.Sprintf("At least %d %s", *c.MinCount, resource)
	default:
		return fmt.Sprintf("Limit on %s", resource)
	}
}

func describeRest(r *model.RestParams) string {
	switch {
	case r.MinDays != nil:
		return fmt.Sprintf("Teams need a rest of %d days between games", *r.MinDays)
	case r.MinHours != nil:
		return fmt.Sprintf("Teams need a rest of %d hours between games", *r.MinHours)
	default:
		return "Teams need rest between games"
	}
}

func describeTemporal(t *model.TemporalParams) string {
	if len(t.DaysOfWeek) > 0 {
		return fmt.Sprintf("Games must be played on %s", strings.Join(t.DaysOfWeek, " or "))
	}
	if t.BeforeTime != "" {
		return fmt.Sprintf("Games must end before %s", t.BeforeTime)
	}
	if t.AfterTime != "" {
		return fmt.Sprintf("Games must start after %s", t.AfterTime)
	}
	return "Games must follow the schedule"
}
