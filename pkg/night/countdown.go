package night

import (
	"fmt"
	"math"
	"time"
)

// FormatCountdown renders d as MM:SS, rounding partial seconds up so the
// display only reads 00:00 once time has actually run out.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
