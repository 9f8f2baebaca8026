package wellbeing

import "time"

// MilestoneEvery is the streak length interval that earns a celebration.
const MilestoneEvery = 5

// Streak counts consecutive calendar days on which the user drew cards.
type Streak struct {
	Count      int       `json:"streak"`
	LastPlayed time.Time `json:"last_played"`
}

// dayIn returns midnight, in loc, of the calendar date t carries in its own
// location.
func dayIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// NextStreak records a play on today. A second play on the same day changes
// nothing; a play the day after the last one extends the streak; anything
// else starts over at 1. milestone is set when the new count is a multiple
// of MilestoneEvery greater than 1.
func NextStreak(prev Streak, today time.Time) (next Streak, milestone bool) {
	today = dayIn(today, today.Location())
	if prev.Count > 0 && !prev.LastPlayed.IsZero() {
		last := dayIn(prev.LastPlayed, today.Location())
		if last.Equal(today) {
			return prev, false
		}
		if last.AddDate(0, 0, 1).Equal(today) {
			next = Streak{Count: prev.Count + 1, LastPlayed: today}
			return next, isMilestone(next.Count)
		}
	}
	next = Streak{Count: 1, LastPlayed: today}
	return next, false
}

func isMilestone(count int) bool {
	return count > 1 && count%MilestoneEvery == 0
}
