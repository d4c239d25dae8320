package models

import (
	"fmt"
	"strings"
)

// Reason classifies why a preset field was rejected.
type Reason string

const (
	ReasonLeadingZero     Reason = "leading_zero"
	ReasonNotFloat        Reason = "not_float"
	ReasonNotBool         Reason = "not_bool"
	ReasonMalformedTicker Reason = "malformed_ticker"
	ReasonTickerNotFound  Reason = "ticker_not_found"
	ReasonLookupFailed    Reason = "lookup_failed"
	ReasonNotInteger      Reason = "not_integer"
	ReasonBadOrdering     Reason = "bad_ordering"
)

var reasonText = map[Reason]string{
	ReasonLeadingZero:     "needs to be formatted with leading 0",
	ReasonNotFloat:        "should be float",
	ReasonNotBool:         "Should be [true/false]",
	ReasonMalformedTicker: "is not a valid ticker symbol",
	ReasonTickerNotFound:  "not found",
	ReasonLookupFailed:    "lookup failed",
	ReasonNotInteger:      "should be integer",
	ReasonBadOrdering:     "not accepted ordering",
}

// Text returns the human-readable form of the reason.
func (r Reason) Text() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return string(r)
}

// FieldError describes one rejected preset value. A rejected tickers list
// yields a single error; Symbols names the offending entries.
type FieldError struct {
	Field   string   `json:"field"`
	Value   string   `json:"value"`
	Reason  Reason   `json:"reason"`
	Detail  string   `json:"detail,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}

func (e FieldError) String() string {
	msg := e.Reason.Text()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("%s : %s, %s", e.Field, e.Value, msg)
}

// ValidationErrors is the ordered result of validating a preset.
// An empty list means the preset is valid.
type ValidationErrors []FieldError

// String renders one line per error.
func (v ValidationErrors) String() string {
	var b strings.Builder
	for _, e := range v {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (v ValidationErrors) Error() string { return strings.TrimSuffix(v.String(), "\n") }

// Fields returns the distinct field names that failed, in order of first failure.
func (v ValidationErrors) Fields() []string {
	seen := make(map[string]struct{}, len(v))
	out := make([]string, 0, len(v))
	for _, e := range v {
		if _, ok := seen[e.Field]; ok {
			continue
		}
		seen[e.Field] = struct{}{}
		out = append(out, e.Field)
	}
	return out
}
