// Package datekey provides DateKey, the calendar-day identifier that keys
// journal entries. A DateKey has exactly one textual form, DD-MM-YYYY, which is
// used both in the encrypted container and on the command line.
package datekey

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"
)

const (
	// Layout is the canonical DD-MM-YYYY encoding in Go reference-time form.
	Layout = "02-01-2006"

	friendlyLayout = "02 January, 2006"

	// MinYear and MaxYear bound the representable range. The four-digit year
	// field of the canonical encoding cannot express anything outside it.
	MinYear = 1
	MaxYear = 9999

	// maxSpanDays is larger than the whole representable range, so any step
	// beyond it is out of range without doing the arithmetic.
	maxSpanDays = (MaxYear - MinYear + 1) * 366
)

// ErrParse is returned by Parse for anything that is not a strict DD-MM-YYYY date.
var ErrParse = errors.New("invalid date")

var strictPattern = regexp.MustCompile(`^[0-9]{2}-[0-9]{2}-[0-9]{4}$`)

// DateKey represents a single calendar day. The zero value is not a valid day.
// DateKey values are comparable and may be used as map keys.
type DateKey struct {
	year  int
	month time.Month
	day   int
}

// New returns the DateKey for the given calendar day, or an error if the day
// does not exist or lies outside the representable range.
func New(year int, month time.Month, day int) (DateKey, error) {
	d := DateKey{year: year, month: month, day: day}
	if !d.valid() {
		return DateKey{}, fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrParse, year, int(month), day)
	}
	return d, nil
}

// MustNew is like New but panics on an invalid day. Intended for tests and
// constants.
func MustNew(year int, month time.Month, day int) DateKey {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar day of t in t's location. Years outside the
// representable range are clamped to Min or Max.
func FromTime(t time.Time) DateKey {
	year, month, day := t.Date()
	switch {
	case year < MinYear:
		return Min()
	case year > MaxYear:
		return Max()
	}
	return DateKey{year: year, month: month, day: day}
}

// Today returns the current local wall-clock date.
func Today() DateKey {
	return FromTime(time.Now())
}

// Min returns the earliest representable day, 01-01-0001.
func Min() DateKey {
	return DateKey{year: MinYear, month: time.January, day: 1}
}

// Max returns the latest representable day, 31-12-9999.
func Max() DateKey {
	return DateKey{year: MaxYear, month: time.December, day: 31}
}

// Parse parses the strict DD-MM-YYYY form. Single-digit fields, other
// separators and other field orders are rejected.
func Parse(s string) (DateKey, error) {
	if !strictPattern.MatchString(s) {
		return DateKey{}, fmt.Errorf("%w %q: expected DD-MM-YYYY", ErrParse, s)
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return DateKey{}, fmt.Errorf("%w %q: %v", ErrParse, s, err)
	}
	if t.Year() < MinYear {
		return DateKey{}, fmt.Errorf("%w %q: year out of range", ErrParse, s)
	}
	return FromTime(t), nil
}

// Year returns the year of d.
func (d DateKey) Year() int { return d.year }

// Month returns the month of d.
func (d DateKey) Month() time.Month { return d.month }

// Day returns the day of the month of d.
func (d DateKey) Day() int { return d.day }

// IsZero reports whether d is the zero value.
func (d DateKey) IsZero() bool { return d == DateKey{} }

// String returns the canonical DD-MM-YYYY form.
func (d DateKey) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.day, int(d.month), d.year)
}

// Friendly returns a long human readable form such as "01 January, 2024".
// It is for display only and is never parsed.
func (d DateKey) Friendly() string {
	return d.Time().Format(friendlyLayout)
}

// Time returns local midnight of d.
func (d DateKey) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.Local)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d DateKey) Compare(o DateKey) int {
	if c := cmp.Compare(d.year, o.year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.month, o.month); c != 0 {
		return c
	}
	return cmp.Compare(d.day, o.day)
}

// Equal reports whether d and o are the same day.
func (d DateKey) Equal(o DateKey) bool { return d == o }

// Before reports whether d is strictly earlier than o.
func (d DateKey) Before(o DateKey) bool { return d.Compare(o) < 0 }

// AddDays returns d moved by n days, or d unchanged when the result would fall
// outside the representable range.
func (d DateKey) AddDays(n int) DateKey {
	if n > maxSpanDays || n < -maxSpanDays {
		return d
	}
	t := time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC)
	return d.orSelf(t.Date())
}

// SubDays is AddDays(-n).
func (d DateKey) SubDays(n int) DateKey {
	return d.AddDays(-n)
}

// AddMonths returns d moved by n months. The day is clamped to the last day of
// the target month, so 31-01-2024 plus one month is 29-02-2024. Results outside
// the representable range leave d unchanged.
func (d DateKey) AddMonths(n int) DateKey {
	const maxSpanMonths = (MaxYear - MinYear + 1) * 12
	if n > maxSpanMonths || n < -maxSpanMonths {
		return d
	}
	total := d.year*12 + int(d.month) - 1 + n
	if total < 0 {
		return d
	}
	year, month := total/12, time.Month(total%12+1)
	return d.orSelf(year, month, min(d.day, daysIn(year, month)))
}

// SubMonths is AddMonths(-n).
func (d DateKey) SubMonths(n int) DateKey {
	return d.AddMonths(-n)
}

// AddYears moves d by n years, counted as 12 months each.
func (d DateKey) AddYears(n int) DateKey {
	if n > MaxYear || n < -MaxYear {
		return d
	}
	return d.AddMonths(n * 12)
}

// SubYears is AddYears(-n).
func (d DateKey) SubYears(n int) DateKey {
	if n > MaxYear || n < -MaxYear {
		return d
	}
	return d.AddMonths(-n * 12)
}

// MarshalText implements encoding.TextMarshaler, which also makes DateKey
// usable as a JSON object key.
func (d DateKey) MarshalText() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("%w: zero or out of range date", ErrParse)
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (d *DateKey) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Sort orders keys chronologically in place.
func Sort(keys []DateKey) {
	slices.SortFunc(keys, DateKey.Compare)
}

// DaysInMonth returns the number of days in the month containing d.
func (d DateKey) DaysInMonth() int {
	return daysIn(d.year, d.month)
}

func (d DateKey) valid() bool {
	if d.year < MinYear || d.year > MaxYear || d.month < time.January || d.month > time.December {
		return false
	}
	return d.day >= 1 && d.day <= daysIn(d.year, d.month)
}

func (d DateKey) orSelf(year int, month time.Month, day int) DateKey {
	next := DateKey{year: year, month: month, day: day}
	if !next.valid() {
		return d
	}
	return next
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
