package charts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/samber/lo"

	"resupplycharts/internal/models"
)

// Tick is one labelled axis position. Position is a ratio in [0,1] along the axis.
type Tick struct {
	Value    float64
	Position float64
	Label    string
}

// ValueTicks returns the ticks for a value axis: zero, the nice maximum and the
// multiples of the tick step in between, ascending and without duplicates.
func ValueTicks(scale Scale, format Formatter) []Tick {
	if format == nil {
		format = Fixed(2)
	}

	values := []float64{0, scale.NiceMax}
	if scale.NiceMax > 0 {
		step := 1.0
		if scale.NiceMax > targetIntervals {
			step = niceStep(scale.NiceMax)
		}
		for v := step; v < scale.NiceMax; v += step {
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	values = lo.Uniq(values)

	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, Tick{
			Value:    v,
			Position: scale.Normalize(v),
			Label:    format(v),
		})
	}
	return ticks
}

// DateTicks returns up to three x axis ticks for the first, middle and last
// distinct UTC calendar day of series. Each tick is anchored at that day's
// midnight, mapped proportionally into the series time span.
func DateTicks(series models.Series) []Tick {
	sorted := series.Sorted()
	if len(sorted) < 2 {
		return nil
	}

	start := sorted[0].Timestamp
	span := float64(sorted[len(sorted)-1].Timestamp - start)
	if span <= 0 {
		return nil
	}

	days := lo.Uniq(lo.Map(sorted, func(p models.DataPoint, _ int) string {
		return dayLabel(p.Time())
	}))
	picks := lo.Uniq([]int{0, len(days) / 2, len(days) - 1})

	ticks := make([]Tick, 0, len(picks))
	for _, idx := range picks {
		label := days[idx]
		sample, ok := lo.Find(sorted, func(p models.DataPoint) bool {
			return dayLabel(p.Time()) == label
		})
		if !ok {
			continue
		}
		t := sample.Time()
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
		progress := float64(midnight-start) / span
		ticks = append(ticks, Tick{
			Value:    float64(midnight),
			Position: math.Max(0, math.Min(1, progress)),
			Label:    label,
		})
	}
	return ticks
}

// dayLabel formats the month/day key used for date ticks, without zero padding
func dayLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
}
