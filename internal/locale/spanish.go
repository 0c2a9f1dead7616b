// Package locale formats timestamps the way the inventory shows them: Spanish
// (Argentina) day and month names in a fixed time zone.
package locale

import (
	"fmt"
	"time"
)

// DefaultTimezone is used when no zone is configured
const DefaultTimezone = "America/Argentina/Cordoba"

var weekdays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Formatter renders times in one location
type Formatter struct {
	loc *time.Location
}

// New loads the named zone. An unknown zone is an error; an empty name means DefaultTimezone.
func New(timezone string) (*Formatter, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Formatter{loc: loc}, nil
}

// NewWithLocation wraps an already loaded location
func NewWithLocation(loc *time.Location) *Formatter {
	return &Formatter{loc: loc}
}

// LongDate renders "lunes, 19 de octubre de 2026"
func (f *Formatter) LongDate(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%s, %d de %s de %d", weekdays[t.Weekday()], t.Day(), months[t.Month()-1], t.Year())
}

// Date renders "19 de octubre de 2026"
func (f *Formatter) Date(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// Clock renders "15:04:05"
func (f *Formatter) Clock(t time.Time) string {
	return t.In(f.loc).Format("15:04:05")
}

// ShortDateTime renders "19/10/2026 15:04"
func (f *Formatter) ShortDateTime(t time.Time) string {
	return t.In(f.loc).Format("02/01/2006 15:04")
}
