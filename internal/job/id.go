package job

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID derives the job identifier from the run date, the simulation duration,
// the solver flavor and the process count. It doubles as the output
// directory name.
func ID(date time.Time, tend float64, flavor string, np int) string {
	return fmt.Sprintf("%s_simple_%s_%s_np%d", date.Format(time.DateOnly), formatDuration(tend), flavor, np)
}

// formatDuration always keeps a fractional part so that 20 ms reads as
// "20.0", matching directories created by earlier tooling.
func formatDuration(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
