package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harentsoaR/laskin-api/internal/store"
)

// Clock is the time source used when stamping records.
type Clock func() time.Time

// FormatDateES renders t the way the clinic's es-ES locale does: d/m/yyyy
// without zero padding.
func FormatDateES(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// ClinicLocation resolves the clinic's configured zone. Offsets are written
// "utc-5" or "utc+5:30"; IANA names such as "America/Bogota" also work.
// Anything unrecognised is UTC.
func ClinicLocation(tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	lower := strings.ToLower(tz)
	if !strings.HasPrefix(lower, "utc") {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
		return time.UTC
	}

	offset := lower[len("utc"):]
	if offset == "" {
		return time.UTC
	}
	sign := 1
	switch offset[0] {
	case '-':
		sign = -1
	case '+':
	default:
		return time.UTC
	}
	hh, mm, _ := strings.Cut(offset[1:], ":")
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return time.UTC
	}
	minutes := 0
	if mm != "" {
		if minutes, err = strconv.Atoi(mm); err != nil || minutes < 0 || minutes >= 60 {
			return time.UTC
		}
	}
	return time.FixedZone(strings.ToUpper(tz), sign*(hours*3600+minutes*60))
}

// clinicToday is the current date on the clinic's wall calendar.
func clinicToday(st *store.Store, now Clock) string {
	return FormatDateES(now().In(ClinicLocation(st.ClinicConfig().Timezone)))
}

// parseVisitDate accepts both ISO dates from treatment forms and es-ES dates
// stamped at registration.
func parseVisitDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseClockTime reads a time written as "15:04" or "3:04 PM" and returns
// minutes since midnight.
func parseClockTime(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range []string{"15:04", "3:04 PM", "3:04PM", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}
