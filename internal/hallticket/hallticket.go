// Package hallticket implements the date-coded hall ticket numbering scheme:
// 4-digit year, one letter encoding the month (A=Jan … L=Dec), 2-digit day,
// and a 4-digit zero-padded daily sequence. Example: 2025J140001.
//
// The package is pure: it proposes, validates and parses ticket numbers but
// never touches the store. Uniqueness is enforced at persistence time by the
// candidates.hall_ticket unique index; callers provision with a
// propose-insert-retry loop.
package hallticket

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"time"
)

const (
	// Length is the fixed ticket length: YYYY + M + DD + NNNN.
	Length = 11

	// MaxSequence is the highest daily sequence the 4-digit field can hold.
	MaxSequence = 9999

	monthLetters = "ABCDEFGHIJKL"
)

// ErrSequenceExhausted is returned when more than MaxSequence tickets would
// be issued for a single calendar day. The printed format cannot widen, so
// this fails loudly instead of wrapping.
var ErrSequenceExhausted = errors.New("hall ticket sequence exhausted for today")

var ticketPattern = regexp.MustCompile(`^\d{4}[A-L]\d{6}$`)

// Prefix returns the 7-character date prefix (YYYY + month letter + DD) for t.
func Prefix(t time.Time) string {
	return fmt.Sprintf("%04d%c%02d", t.Year(), monthLetters[int(t.Month())-1], t.Day())
}

// Next proposes the ticket following last within the given prefix. last is
// the lexicographically greatest persisted ticket sharing the prefix, or ""
// when none exists yet (sequence starts at 1).
func Next(prefix, last string) (string, error) {
	seq := 1
	if last != "" {
		n, err := strconv.Atoi(last[len(last)-4:])
		if err != nil {
			return "", fmt.Errorf("parse sequence of %q: %w", last, err)
		}
		seq = n + 1
	}
	if seq > MaxSequence {
		return "", ErrSequenceExhausted
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// Random returns prefix plus a random 4-digit sequence. Best effort only:
// used when the last-ticket lookup fails, with the unique index as backstop.
func Random(prefix string) string {
	return fmt.Sprintf("%s%04d", prefix, rand.Intn(MaxSequence+1))
}

// Validate reports whether s is a well-formed hall ticket number.
func Validate(s string) bool {
	return len(s) == Length && ticketPattern.MatchString(s)
}

// Ticket is the decomposition of a valid hall ticket number.
type Ticket struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Sequence int    `json:"sequence"`
	// Formatted renders as "YYYY-MM-DD #NNNN" for display.
	Formatted string `json:"formatted"`
}

// Parse decomposes a hall ticket number. The second return value is false
// for malformed input; Parse never panics or errors on bad data.
func Parse(s string) (*Ticket, bool) {
	if !Validate(s) {
		return nil, false
	}

	year, _ := strconv.Atoi(s[0:4])
	month := int(s[4]-'A') + 1
	day, _ := strconv.Atoi(s[5:7])
	seq, _ := strconv.Atoi(s[7:11])

	return &Ticket{
		Year:      year,
		Month:     month,
		Day:       day,
		Sequence:  seq,
		Formatted: fmt.Sprintf("%04d-%02d-%s #%s", year, month, s[5:7], s[7:11]),
	}, true
}
