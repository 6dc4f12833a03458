package brackets

import (
	"fmt"
	"time"

	"github.com/Dosada05/cue-league/models"
)

const DateLayout = "2006-01-02"

// firstTuesday returns the first Tuesday on or after start.
func firstTuesday(start time.Time) time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(time.Tuesday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// AssignDates walks forward one week at a time from the first Tuesday on or after startDate,
// filling each group's unscheduled matches in order. A group takes at most maxPerDate matches
// on a date and a player at most maxPerPlayerPerDate. The first group visited rotates weekly.
// Matches that already carry a date keep it.
func AssignDates(groups []models.Group, startDate time.Time, maxPerDate, maxPerPlayerPerDate int) ([]models.Group, error) {
	if maxPerDate < 1 || maxPerPlayerPerDate < 1 {
		return nil, fmt.Errorf("%w: got %d per date, %d per player", ErrInvalidScheduleConfig, maxPerDate, maxPerPlayerPerDate)
	}
	out := models.CloneGroups(groups)

	remaining := 0
	for _, g := range out {
		for _, m := range g.Matches {
			if m.MatchDate == "" {
				remaining++
			}
		}
	}
	if remaining == 0 {
		return out, nil
	}

	// every productive week places at least one match, so this many weeks always suffices
	maxWeeks := remaining + 1
	current := firstTuesday(startDate)
	first := 0

	for week := 0; week < maxWeeks; week++ {
		date := current.Format(DateLayout)
		perPlayer := make(map[string]int)

		for k := range out {
			g := &out[(first+k)%len(out)]
			placed := 0
			for i := range g.Matches {
				if placed >= maxPerDate {
					break
				}
				m := &g.Matches[i]
				if m.MatchDate != "" {
					continue
				}
				if perPlayer[m.Player1] >= maxPerPlayerPerDate || perPlayer[m.Player2] >= maxPerPlayerPerDate {
					continue
				}
				m.MatchDate = date
				perPlayer[m.Player1]++
				perPlayer[m.Player2]++
				placed++
				remaining--
			}
		}

		if remaining == 0 {
			return out, nil
		}
		current = current.AddDate(0, 0, 7)
		first = (first + 1) % len(out)
	}
	// limits of at least 1 let every week place the first open match it visits,
	// so only a broken placement loop ends up here
	return nil, fmt.Errorf("%w: %d matches left after %d weeks", ErrScheduleNotConverged, remaining, maxWeeks)
}
