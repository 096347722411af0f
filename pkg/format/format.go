// Package format renders meetup dates the way the mobile client displays
// them, in Brazilian Portuguese.
package format

import (
	"fmt"
	"time"
)

var months = [...]string{
	"janeiro",
	"fevereiro",
	"março",
	"abril",
	"maio",
	"junho",
	"julho",
	"agosto",
	"setembro",
	"outubro",
	"novembro",
	"dezembro",
}

// DateTimeFormat parses an ISO-8601 timestamp and renders it as
// "2 de janeiro, às 18h".
func DateTimeFormat(iso string) (string, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "", fmt.Errorf("failed to parse date: %w", err)
	}
	return fmt.Sprintf("%d de %s, às %02dh", t.Day(), months[t.Month()-1], t.Hour()), nil
}

// DateFormat renders a date as "2 de janeiro".
func DateFormat(t time.Time) string {
	return fmt.Sprintf("%d de %s", t.Day(), months[t.Month()-1])
}
