package utils

import "time"

const ReportTimestampLayout = "2006-01-02 15:04:05 UTC"

// FormatTimestamp renders an RFC3339 timestamp in UTC for reports. Anything
// that does not parse is returned unchanged.
func FormatTimestamp(value string) string {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return parsed.UTC().Format(ReportTimestampLayout)
}
