package domain

import (
	"sort"
	"time"

	"github.com/mentorgrid/MG-SessionService/pkg/types"
)

// ResolveBookableTimes produces the wall-clock start times bookable on date
// given a weekly availability. Starts are generated per active slot at the
// given granularity, beginning at the slot start; a start is kept only while
// start + granularity still fits inside the slot, so partial remainders are
// dropped (a 90-minute slot at 60-minute granularity yields one start).
//
// The result is sorted and de-duplicated, so overlapping stored slots cannot
// produce the same start twice. Past instants are NOT filtered here; callers
// that resolve for the current date do that themselves.
func ResolveBookableTimes(weekly WeeklyAvailability, date time.Time, granularityMinutes int) []types.TimeString {
	day, ok := weekly[WeekdayFromTime(date)]
	if !ok || !day.Available {
		return []types.TimeString{}
	}

	starts := make([]types.TimeString, 0)

	for _, slot := range day.Slots {
		if !slot.Active {
			continue
		}

		current := slot.Start
		for {
			stepEnd, err := current.AddMinutes(granularityMinutes)
			if err != nil {
				// за пределами суток — слот исчерпан
				break
			}
			if stepEnd.IsAfter(slot.End) {
				break
			}

			starts = append(starts, current)
			current = stepEnd
		}
	}

	sort.Slice(starts, func(i, j int) bool {
		return starts[i].IsBefore(starts[j])
	})

	deduped := starts[:0]
	for i, s := range starts {
		if i == 0 || s != starts[i-1] {
			deduped = append(deduped, s)
		}
	}

	return deduped
}

// ResolveBookableInstants materialises the wall-clock starts for date into
// absolute UTC instants.
func ResolveBookableInstants(weekly WeeklyAvailability, date time.Time, granularityMinutes int) []time.Time {
	starts := ResolveBookableTimes(weekly, date, granularityMinutes)

	instants := make([]time.Time, 0, len(starts))
	for _, s := range starts {
		instant, err := s.OnDate(date, time.UTC)
		if err != nil {
			continue
		}
		instants = append(instants, instant)
	}

	return instants
}
