// Package timezone keeps every timestamp in the application timezone.
//
// The location is taken from the APP_TIMEZONE environment variable
// (standard IANA names such as "UTC" or "Europe/Amsterdam") and loaded
// when the package is imported.
//
//	now := timezone.Now()
//	start, err := timezone.Parse("2006-01-02", "2026-10-01")
//	label := timezone.Format(now, "2006-01-02 15:04:05")
//	local := timezone.ToAppTime(someTime)
package timezone
