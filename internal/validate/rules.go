package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

/* ───────── helpers ───────── */

var (
	emailRE  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit = regexp.MustCompile(`\D`)
	intTokRE = regexp.MustCompile(`\d+`)
)

func digits(s string) string { return nonDigit.ReplaceAllString(s, "") }

/* ───────── email ───────── */

func checkEmail(raw string) (Kind, string) {
	if emailRE.MatchString(raw) {
		return "", ""
	}
	return InvalidEmail, ""
}

/* ───────── phone ───────── */

// checkPhone strips non-digits, rejects out-of-range lengths and computes
// the canonical NNN-NNN-NNNN form. An 11-digit number keeps only a leading
// country code of 1; anything else cannot reduce to ten digits.
func checkPhone(raw string) (Kind, string) {
	d := digits(raw)
	if len(d) < 10 {
		return PhoneTooShort, ""
	}
	if len(d) > 11 {
		return PhoneTooLong, ""
	}
	if len(d) == 11 {
		if !strings.HasPrefix(d, "1") {
			return PhoneTooLong, ""
		}
		d = d[1:]
	}
	canonical := fmt.Sprintf("%s-%s-%s", d[0:3], d[3:6], d[6:10])
	if canonical == raw {
		return "", ""
	}
	return FormatSuggestion, canonical
}

/* ───────── dates ───────── */

// DateOrder is the locale hint for ambiguous all-numeric dates.
type DateOrder int

const (
	// MonthFirst tries MM/DD/YYYY before DD/MM/YYYY.
	MonthFirst DateOrder = iota
	// DayFirst tries DD/MM/YYYY before MM/DD/YYYY.
	DayFirst
)

const canonicalDate = "2006-01-02"

// nativeLayouts are the formats attempted before the numeric-token
// heuristic. Canonical form first.
var nativeLayouts = []string{
	canonicalDate,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	time.RFC3339,
}

// checkDate validates one date value. Already-canonical values pass;
// parseable non-canonical values yield InvalidDateFormat with the canonical
// suggestion; everything else yields UnparseableDate.
func checkDate(raw string, order DateOrder) (Kind, string) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range nativeLayouts {
		t, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		canonical := t.Format(canonicalDate)
		if canonical == trimmed {
			return "", ""
		}
		return InvalidDateFormat, canonical
	}
	if canonical, ok := threeTokenDate(trimmed, order); ok {
		return InvalidDateFormat, canonical
	}
	return UnparseableDate, ""
}

// threeTokenDate interprets a value carrying exactly three integer groups as
// month/day/year, falling back to day/month/year (or the reverse under
// DayFirst). Ambiguous values where both leading tokens are <= 12 resolve
// silently in favor of the first interpretation.
func threeTokenDate(raw string, order DateOrder) (string, bool) {
	toks := intTokRE.FindAllString(raw, -1)
	if len(toks) != 3 {
		return "", false
	}
	a, _ := strconv.Atoi(toks[0])
	b, _ := strconv.Atoi(toks[1])
	year, _ := strconv.Atoi(toks[2])
	if year < 100 {
		year += 2000
	}

	attempts := [][2]int{{a, b}, {b, a}} // {month, day} candidates
	if order == DayFirst {
		attempts = [][2]int{{b, a}, {a, b}}
	}
	for _, md := range attempts {
		if canonical, ok := calendarDate(year, md[0], md[1]); ok {
			return canonical, true
		}
	}
	return "", false
}

// calendarDate reports whether year/month/day is a real calendar date and
// returns it canonically formatted. time.Date normalizes overflow (Feb 30 ->
// Mar 2), so a roundtrip check is required.
func calendarDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(canonicalDate), true
}

// CanonicalDate reformats a date value to YYYY-MM-DD when it is parseable
// under the same rules checkDate applies. Unparseable values are returned
// unchanged; canonical values round-trip.
func CanonicalDate(raw string, order DateOrder) string {
	kind, suggestion := checkDate(raw, order)
	switch kind {
	case "":
		return raw
	case InvalidDateFormat:
		return suggestion
	default:
		return raw
	}
}
