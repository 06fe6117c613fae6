package cli

import (
	"time"

	"github.com/mgrundel/timelane/pkg/errors"
)

// timeFormats are the layouts accepted for time flags, tried in order.
var timeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime parses a time flag value. Layouts without a zone are read
// as local time.
func parseTime(value string) (time.Time, error) {
	for _, layout := range timeFormats {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidInput,
		"cannot parse time %q (use RFC 3339 or 2006-01-02[ 15:04])", value)
}

// displayTime formats a time for table and detail output.
func displayTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
