package bonus

import (
	"fmt"
	"time"
)

// FormatRemaining renders a wait duration as a human sentence fragment such
// as "1 hour, 12 minutes, and 3 seconds". Leading zero units are omitted.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d %s, %d %s, and %d %s",
			hours, plural(hours, "hour"),
			minutes, plural(minutes, "minute"),
			seconds, plural(seconds, "second"))
	case minutes > 0:
		return fmt.Sprintf("%d %s and %d %s",
			minutes, plural(minutes, "minute"),
			seconds, plural(seconds, "second"))
	default:
		return fmt.Sprintf("%d %s", seconds, plural(seconds, "second"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
