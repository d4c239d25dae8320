package usecase

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"OptScreen/internal/domain/models"
	dservice "OptScreen/internal/domain/service"
	"OptScreen/pkg/logger"
)

const (
	fieldTickers = "tickers"
	fieldLimit   = "limit"
	fieldOrderBy = "order-by"
)

// numericFields are the min/max bounds the screener accepts as floats.
var numericFields = rangeFields(
	"iv", "oi", "strike", "volume", "voi", "diff", "ask-bid", "exp", "price",
	"price-20d", "volume-20d", "iv-20d", "delta-20d", "gamma-20d", "theta-20d", "vega-20d", "rho-20d",
	"price-100d", "volume-100d", "iv-100d", "delta-100d", "gamma-100d", "theta-100d", "vega-100d", "rho-100d",
	"sto", "yield", "myield", "delta", "gamma", "theta", "vega", "cap",
)

var boolFields = setOf("active", "stock", "etf", "puts", "calls", "itm", "otm", "exclude")

var orderings = setOf("e_desc", "e_asc", "iv_desc", "iv_asc", "md_desc", "md_asc", "lp_desc", "lp_asc")

// tickerPattern admits plain symbols plus index (^SPX), class (BRK.B, BRK-B)
// and futures (ES=F) forms.
var tickerPattern = regexp.MustCompile(`^\^?[A-Za-z0-9]{1,10}([.\-=][A-Za-z0-9]{1,4})?$`)

func rangeFields(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, 2*len(names))
	for _, n := range names {
		m["min-"+n] = struct{}{}
		m["max-"+n] = struct{}{}
	}
	return m
}

func setOf(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, s := range items {
		m[s] = struct{}{}
	}
	return m
}

// IsNumericField reports whether key is one of the float range filters.
func IsNumericField(key string) bool {
	_, ok := numericFields[key]
	return ok
}

// IsBoolField reports whether key is one of the boolean filters.
func IsBoolField(key string) bool {
	_, ok := boolFields[key]
	return ok
}

// PresetValidator checks preset values against the screener's accepted
// formats. Every field is checked; nothing short-circuits.
type PresetValidator struct {
	lookup dservice.QuoteLookup
	log    *logger.Logger
}

// NewPresetValidator creates a validator. A nil lookup limits ticker
// validation to the syntax check.
func NewPresetValidator(lookup dservice.QuoteLookup, l *logger.Logger) *PresetValidator {
	if l == nil {
		l = logger.Nop()
	}
	return &PresetValidator{lookup: lookup, log: l}
}

// SyntaxOnly returns a validator that skips ticker existence lookups.
func (v *PresetValidator) SyntaxOnly() *PresetValidator {
	return &PresetValidator{log: v.log}
}

// Validate returns one FieldError per rejected field, in preset order.
// Keys outside the known categories pass through unchecked.
func (v *PresetValidator) Validate(ctx context.Context, p *models.Preset) models.ValidationErrors {
	var errs models.ValidationErrors
	if p == nil {
		return errs
	}

	for _, f := range p.Fields {
		var fe *models.FieldError
		switch {
		case IsNumericField(f.Key):
			fe = checkFloat(f)
		case IsBoolField(f.Key):
			fe = checkBool(f)
		case f.Key == fieldTickers:
			fe = v.checkTickers(ctx, f)
		case f.Key == fieldLimit:
			fe = checkInt(f)
		case f.Key == fieldOrderBy:
			fe = checkOrdering(f)
		default:
			v.log.Debug("preset field not validated", logger.String("preset", p.Name), logger.String("field", f.Key))
		}
		if fe != nil {
			errs = append(errs, *fe)
		}
	}
	return errs
}

// parseFloat accepts decimal literals only. Hex floats, NaN and Inf cannot
// be sent to the screener as JSON numbers.
func parseFloat(s string) (float64, bool) {
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func checkFloat(f models.PresetField) *models.FieldError {
	if _, ok := parseFloat(f.Value); !ok {
		return &models.FieldError{Field: f.Key, Value: f.Value, Reason: models.ReasonNotFloat}
	}
	if strings.HasPrefix(f.Value, ".") {
		return &models.FieldError{Field: f.Key, Value: f.Value, Reason: models.ReasonLeadingZero}
	}
	return nil
}

func checkBool(f models.PresetField) *models.FieldError {
	if f.Value == "true" || f.Value == "false" {
		return nil
	}
	return &models.FieldError{Field: f.Key, Value: f.Value, Reason: models.ReasonNotBool}
}

func checkInt(f models.PresetField) *models.FieldError {
	if _, err := strconv.Atoi(f.Value); err != nil {
		return &models.FieldError{Field: f.Key, Value: f.Value, Reason: models.ReasonNotInteger}
	}
	return nil
}

func checkOrdering(f models.PresetField) *models.FieldError {
	if _, ok := orderings[f.Value]; ok {
		return nil
	}
	return &models.FieldError{Field: f.Key, Value: f.Value, Reason: models.ReasonBadOrdering}
}

// SplitTickers splits a tickers value on commas and trims each entry.
// Empty entries are kept so they can be reported.
func SplitTickers(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// checkTickers folds every failing symbol into a single error. The first
// failure sets Reason; later failures with other reasons go to Detail.
func (v *PresetValidator) checkTickers(ctx context.Context, f models.PresetField) *models.FieldError {
	var (
		order  []models.Reason
		bad    []string
		failed = map[models.Reason][]string{}
	)
	fail := func(r models.Reason, sym string) {
		if _, ok := failed[r]; !ok {
			order = append(order, r)
		}
		failed[r] = append(failed[r], sym)
		bad = append(bad, sym)
	}

	for _, sym := range SplitTickers(f.Value) {
		if !tickerPattern.MatchString(sym) {
			fail(models.ReasonMalformedTicker, sym)
			continue
		}
		if v.lookup == nil {
			continue
		}
		q, err := v.lookup.Quote(ctx, sym)
		switch {
		case err != nil:
			v.log.Warn("ticker lookup failed", logger.String("symbol", sym), logger.Error(err))
			fail(models.ReasonLookupFailed, sym)
		case q == nil || q.RegularMarketPrice == 0:
			fail(models.ReasonTickerNotFound, sym)
		}
	}

	if len(order) == 0 {
		return nil
	}

	fe := &models.FieldError{Field: f.Key, Value: f.Value, Reason: order[0], Symbols: bad}
	details := []string{strings.Join(failed[order[0]], ",")}
	for _, r := range order[1:] {
		details = append(details, r.Text()+": "+strings.Join(failed[r], ","))
	}
	fe.Detail = strings.Join(details, "; ")
	return fe
}
