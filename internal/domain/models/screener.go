package models

import (
	"encoding/json"
	"strconv"
)

// OptionRecord is one screener result as returned by the remote service.
type OptionRecord struct {
	ContractSymbol       string  `json:"contractSymbol"`
	Symbol               string  `json:"symbol"`
	OptType              string  `json:"optType"`
	Strike               float64 `json:"strike"`
	Expiration           float64 `json:"expiration"`
	ImpliedVolatility    float64 `json:"impliedVolatility"`
	LastPrice            float64 `json:"lastPrice"`
	Bid                  float64 `json:"bid"`
	Ask                  float64 `json:"ask"`
	Volume               float64 `json:"volume"`
	OpenInterest         float64 `json:"openInterest"`
	Yield                float64 `json:"yield"`
	MonthlyYield         float64 `json:"monthlyyield"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
	RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
	LastTradeDate        float64 `json:"lastTradeDate"`
	LastCrawl            float64 `json:"lastCrawl"`
	InTheMoney           bool    `json:"inTheMoney"`
	PChange              float64 `json:"pChange"`
}

// Column maps a remote field name to its abbreviated report header.
type Column struct {
	Field  string
	Header string
}

// ColumnMap is the full rename table. Only the first EmittedColumns
// entries make it into the report.
var ColumnMap = []Column{
	{"contractSymbol", "CS"},
	{"symbol", "S"},
	{"optType", "T"},
	{"strike", "Str"},
	{"expiration", "Exp ∨"},
	{"impliedVolatility", "IV"},
	{"lastPrice", "LP"},
	{"bid", "B"},
	{"ask", "A"},
	{"volume", "V"},
	{"openInterest", "OI"},
	{"yield", "Y"},
	{"regularMarketPrice", "SMP"},
	{"regularMarketDayLow", "SMDL"},
	{"regularMarketDayHigh", "SMDH"},
	{"lastTradeDate", "LU"},
	{"inTheMoney", "ITM"},
	{"monthlyyield", "MY"},
	{"lastCrawl", "LC"},
	{"pChange", "PC"},
}

const EmittedColumns = 17

// Headers returns the report headers in output order.
func Headers() []string {
	out := make([]string, EmittedColumns)
	for i := 0; i < EmittedColumns; i++ {
		out[i] = ColumnMap[i].Header
	}
	return out
}

// ScreenerRow is a reshaped result row. Field order matches Headers().
type ScreenerRow struct {
	ContractSymbol       string  `csv:"CS"`
	Symbol               string  `csv:"S"`
	OptType              string  `csv:"T"`
	Strike               float64 `csv:"Str"`
	Expiration           string  `csv:"Exp ∨"`
	ImpliedVolatility    float64 `csv:"IV"`
	LastPrice            float64 `csv:"LP"`
	Bid                  float64 `csv:"B"`
	Ask                  float64 `csv:"A"`
	Volume               float64 `csv:"V"`
	OpenInterest         float64 `csv:"OI"`
	Yield                float64 `csv:"Y"`
	RegularMarketPrice   float64 `csv:"SMP"`
	RegularMarketDayLow  float64 `csv:"SMDL"`
	RegularMarketDayHigh float64 `csv:"SMDH"`
	LastTradeDate        string  `csv:"LU"`
	InTheMoney           bool    `csv:"ITM"`
}

// Cells returns the row values in header order.
func (r ScreenerRow) Cells() []any {
	return []any{
		r.ContractSymbol, r.Symbol, r.OptType, r.Strike, r.Expiration,
		r.ImpliedVolatility, r.LastPrice, r.Bid, r.Ask, r.Volume,
		r.OpenInterest, r.Yield, r.RegularMarketPrice, r.RegularMarketDayLow,
		r.RegularMarketDayHigh, r.LastTradeDate, r.InTheMoney,
	}
}

// Strings returns the row values formatted for display.
func (r ScreenerRow) Strings() []string {
	cells := r.Cells()
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case string:
			out[i] = v
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[i] = strconv.FormatBool(v)
		}
	}
	return out
}

// Table is the screener report.
type Table struct {
	Columns []string
	Rows    []ScreenerRow
}

// NewTable returns an empty table carrying the report headers.
func NewTable() Table { return Table{Columns: Headers()} }

func (t Table) Empty() bool { return len(t.Rows) == 0 }

// MarshalJSON encodes rows as arrays so the abbreviated headers survive
// intact; several of them are not valid struct tag names.
func (t Table) MarshalJSON() ([]byte, error) {
	rows := make([][]any, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, r.Cells())
	}
	cols := t.Columns
	if cols == nil {
		cols = []string{}
	}
	return json.Marshal(struct {
		Columns []string `json:"columns"`
		Rows    [][]any  `json:"rows"`
	}{cols, rows})
}

// Outcome is the terminal state of a screen run.
type Outcome string

const (
	OutcomeRejected      Outcome = "rejected"
	OutcomeRequestFailed Outcome = "request_failed"
	OutcomeEmptyResult   Outcome = "empty_result"
	OutcomeSuccess       Outcome = "success"
)

// ScreenResult is what a screen run hands back to callers. Message is empty
// only on success.
type ScreenResult struct {
	RunID   string           `json:"run_id"`
	Preset  string           `json:"preset"`
	Outcome Outcome          `json:"outcome"`
	Table   Table            `json:"table"`
	Message string           `json:"message,omitempty"`
	Errors  ValidationErrors `json:"errors,omitempty"`
}
