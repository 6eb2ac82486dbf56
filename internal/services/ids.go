// internal/services/ids.go
package services

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var sequentialIDPattern = regexp.MustCompile(`^([A-Z]{2,6})-(\d{3,})$`)

// NextSequentialID allocates the identifier following last under the given
// prefix, preserving zero padding to at least three digits. When last does not
// match the expected PREFIX-NNN shape, a timestamp-derived identifier is used
// so allocation never fails on legacy data.
func NextSequentialID(prefix, last string, now time.Time) string {
	if last == "" {
		return fmt.Sprintf("%s-%03d", prefix, 1)
	}

	m := sequentialIDPattern.FindStringSubmatch(last)
	if m == nil || m[1] != prefix {
		return fmt.Sprintf("%s-%d", prefix, now.Unix())
	}

	n, err := strconv.Atoi(m[2])
	if err != nil {
		return fmt.Sprintf("%s-%d", prefix, now.Unix())
	}

	width := len(m[2])
	if width < 3 {
		width = 3
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, n+1)
}
