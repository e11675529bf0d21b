// Package timezone pins every calendar decision to the studio's zone.
//
// Working days, the slot grid and day ranges are all computed on local wall
// clocks, so a studio day never straddles two UTC dates and opening hours stay
// put across daylight saving changes:
//
//	midnight := timezone.StartOfDay(instant)
//	opening := timezone.At(midnight, 9, 0, 0)
//	day, err := timezone.Parse("2006-01-02", "2030-01-03")
//
// The zone comes from APP_TIMEZONE (an IANA name such as Europe/Madrid) and is
// loaded once when the package is imported. An unknown name falls back to UTC.
package timezone
