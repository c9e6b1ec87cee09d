package timer

import (
	"fmt"
	"time"
)

// Clockface renders d as m:ss, rounding partial seconds up so the display
// only shows 0:00 once time is really out.
func Clockface(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Humanize returns a short spoken-style duration: "1 second", "40 seconds",
// "3 minutes". Rounds to the nearest minute once there's at least one.
func Humanize(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec < 60 {
		if totalSec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", totalSec)
	}
	m := (totalSec + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
