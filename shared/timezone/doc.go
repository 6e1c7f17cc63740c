// Package timezone keeps every "now" and every calendar date in the restaurant's
// configured timezone (APP_TIMEZONE, IANA names such as "Europe/Madrid").
//
// Usage:
//
//	today := timezone.Today()                   // "2026-10-18"
//	date, err := timezone.ParseDate("2026-10-18") // midnight in app timezone
//	stamp := timezone.Format(t, time.RFC3339)
//
// The location is loaded once when the package is imported and falls back to UTC
// when the configured name cannot be resolved.
package timezone
