package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type Outcome int

const (
	Valid Outcome = iota
	Invalid
	// CommandInput means the text is a slash command, not field data.
	CommandInput
)

type Result struct {
	Outcome Outcome
	Reason  string
}

func (r Result) OK() bool { return r.Outcome == Valid }

func (r Result) IsCommand() bool { return r.Outcome == CommandInput }

func ok() Result { return Result{Outcome: Valid} }

func fail(reason string) Result { return Result{Outcome: Invalid, Reason: reason} }

func commandInput() Result { return Result{Outcome: CommandInput} }

const (
	TopicMin        = 3
	TopicMax        = 500
	SubjectMin      = 2
	SubjectMax      = 100
	VolumeMin       = 1
	VolumeMax       = 5000
	RequirementsMax = 2000
	PromoMin        = 3
	PromoMax        = 20
	// DeadlineHorizon is how far ahead a deadline may be set.
	DeadlineHorizon = 2 * 365 * 24 * time.Hour
)

// DeadlineLayouts are tried in order; the first that parses wins.
var DeadlineLayouts = []string{
	"02.01.2006",
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
}

var (
	numeral   = regexp.MustCompile(`\d+`)
	promoCode = regexp.MustCompile(`^[A-Z0-9_-]+$`)
)

func Topic(raw string) Result {
	return length(raw, "Topic", TopicMin, TopicMax)
}

func Subject(raw string) Result {
	return length(raw, "Subject", SubjectMin, SubjectMax)
}

func length(raw, field string, minLen, maxLen int) Result {
	text := strings.TrimSpace(raw)
	if text == "" {
		return fail(field + " cannot be empty")
	}
	if IsCommand(text) {
		return commandInput()
	}
	n := utf8.RuneCountInString(text)
	if n < minLen {
		return fail(field + " is too short (at least " + strconv.Itoa(minLen) + " characters)")
	}
	if n > maxLen {
		return fail(field + " is too long (at most " + strconv.Itoa(maxLen) + " characters)")
	}
	return ok()
}

// ParseDate tries every layout in DeadlineLayouts.
func ParseDate(raw string) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	for _, layout := range DeadlineLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Deadline validates against the calendar date of now.
func Deadline(raw string, now time.Time) (time.Time, Result) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, fail("Deadline cannot be empty")
	}
	if IsCommand(text) {
		return time.Time{}, commandInput()
	}
	d, parsed := ParseDate(text)
	if !parsed {
		return time.Time{}, fail("Unrecognised date, use DD.MM.YYYY, for example 10.10.2030")
	}
	today := Day(now)
	if d.Before(today) {
		return time.Time{}, fail("Deadline cannot be in the past, use DD.MM.YYYY")
	}
	if d.After(today.Add(DeadlineHorizon)) {
		return time.Time{}, fail("Deadline cannot be more than two years ahead, use DD.MM.YYYY")
	}
	return d, ok()
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LeadingNumber returns the first decimal numeral in raw, 0 if none.
func LeadingNumber(raw string) int {
	m := numeral.FindString(raw)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

func Volume(raw string) (int, Result) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, fail("Volume cannot be empty")
	}
	if IsCommand(text) {
		return 0, commandInput()
	}
	m := numeral.FindString(text)
	if m == "" {
		return 0, fail("Volume must contain a number, for example 15")
	}
	n, err := strconv.Atoi(m)
	if err != nil || n > VolumeMax {
		return 0, fail("Volume cannot be more than " + strconv.Itoa(VolumeMax))
	}
	if n < VolumeMin {
		return 0, fail("Volume must be at least " + strconv.Itoa(VolumeMin))
	}
	return n, ok()
}

func Requirements(raw string) Result {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ok()
	}
	if IsCommand(text) {
		return commandInput()
	}
	if utf8.RuneCountInString(text) > RequirementsMax {
		return fail("Requirements are too long (at most " + strconv.Itoa(RequirementsMax) + " characters)")
	}
	return ok()
}

func PromoCode(raw string) Result {
	code := strings.TrimSpace(raw)
	if code == "" {
		return ok()
	}
	if IsCommand(code) {
		return commandInput()
	}
	if len(code) < PromoMin {
		return fail("Promo code is too short")
	}
	if len(code) > PromoMax {
		return fail("Promo code is too long")
	}
	if !promoCode.MatchString(code) {
		return fail("Promo code may contain only capital letters, digits, hyphens and underscores")
	}
	return ok()
}
