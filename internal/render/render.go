package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"OptScreen/internal/domain/models"

	"github.com/gocarina/gocsv"
)

// Output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// ParseFormat normalises a --format value.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, csv or json)", s)
	}
}

// ScreenResult writes a result. Non-success outcomes print the message in
// table and csv mode; JSON always carries the whole result.
func ScreenResult(w io.Writer, format string, res *models.ScreenResult) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatCSV:
		if res.Outcome != models.OutcomeSuccess {
			return writeMessage(w, res.Message)
		}
		return gocsv.Marshal(&res.Table.Rows, w)
	default:
		if res.Outcome != models.OutcomeSuccess {
			return writeMessage(w, res.Message)
		}
		return Table(w, res.Table)
	}
}

// Table writes rows aligned under the report headers.
func Table(w io.Writer, t models.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, r := range t.Rows {
		fmt.Fprintln(tw, strings.Join(r.Strings(), "\t"))
	}
	return tw.Flush()
}

// ValidationErrors writes one line per rejected field, or "OK".
func ValidationErrors(w io.Writer, format string, name string, errs models.ValidationErrors) error {
	if format == FormatJSON {
		return writeJSON(w, struct {
			Preset string                  `json:"preset"`
			Valid  bool                    `json:"valid"`
			Errors models.ValidationErrors `json:"errors"`
		}{name, len(errs) == 0, errs})
	}
	if len(errs) == 0 {
		_, err := fmt.Fprintf(w, "%s: OK\n", name)
		return err
	}
	_, err := io.WriteString(w, errs.String())
	return err
}

// Presets writes one preset name per line.
func Presets(w io.Writer, format string, names []string) error {
	if format == FormatJSON {
		if names == nil {
			names = []string{}
		}
		return writeJSON(w, names)
	}
	for _, n := range names {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}

type greeksCSVRow struct {
	Time    string  `csv:"time"`
	IV      float64 `csv:"iv"`
	Gamma   float64 `csv:"gamma"`
	Delta   float64 `csv:"delta"`
	Theta   float64 `csv:"theta"`
	Rho     float64 `csv:"rho"`
	Vega    float64 `csv:"vega"`
	Premium float64 `csv:"premium"`
	Price   float64 `csv:"price"`
}

// Greeks writes a contract's greek history.
func Greeks(w io.Writer, format string, contract string, points []models.GreeksPoint) error {
	switch format {
	case FormatJSON:
		if points == nil {
			points = []models.GreeksPoint{}
		}
		return writeJSON(w, struct {
			Contract string               `json:"contract"`
			Points   []models.GreeksPoint `json:"points"`
		}{contract, points})
	case FormatCSV:
		rows := make([]greeksCSVRow, 0, len(points))
		for _, p := range points {
			rows = append(rows, greeksCSVRow{
				Time: p.Time.Format("2006-01-02 15:04:05"), IV: p.IV, Gamma: p.Gamma, Delta: p.Delta,
				Theta: p.Theta, Rho: p.Rho, Vega: p.Vega, Premium: p.Premium, Price: p.Price,
			})
		}
		return gocsv.Marshal(&rows, w)
	}

	if len(points) == 0 {
		return writeMessage(w, fmt.Sprintf("No historical greeks for %s", contract))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "time\tiv\tgamma\tdelta\ttheta\trho\tvega\tpremium\tprice")
	for _, p := range points {
		cells := []string{p.Time.Format("2006-01-02 15:04:05")}
		for _, v := range []float64{p.IV, p.Gamma, p.Delta, p.Theta, p.Rho, p.Vega, p.Premium, p.Price} {
			cells = append(cells, strconv.FormatFloat(v, 'f', -1, 64))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func writeMessage(w io.Writer, msg string) error {
	if msg == "" {
		return nil
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, err := io.WriteString(w, msg)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
