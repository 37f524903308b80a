package progression

import "time"

const day = 24 * time.Hour

// NextDailyStreak returns the practice streak after practicing at now.
// Dates are compared at UTC midnight: the same day keeps the streak, the
// next day extends it, and any longer gap restarts it at 1.
func NextDailyStreak(current int, last *time.Time, now time.Time) int {
	if last == nil {
		return 1
	}
	gap := utcMidnight(now).Sub(utcMidnight(*last))
	if gap < 0 {
		gap = -gap
	}
	switch days := int(gap / day); days {
	case 0:
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
