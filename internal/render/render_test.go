package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"OptScreen/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successResult() *models.ScreenResult {
	t := models.NewTable()
	t.Rows = []models.ScreenerRow{{
		ContractSymbol: "AAPL240119C00190000", Symbol: "AAPL", OptType: "C", Strike: 190,
		Expiration: "01-19-24", ImpliedVolatility: 0.235, LastTradeDate: "01-05-24", InTheMoney: true,
	}}
	return &models.ScreenResult{RunID: "r", Preset: "p", Outcome: models.OutcomeSuccess, Table: t}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"": FormatTable, "TABLE": FormatTable, "csv": FormatCSV, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestScreenResult_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ScreenResult(&buf, FormatTable, successResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "CS"))
	assert.Contains(t, lines[0], "Exp ∨")
	assert.Contains(t, lines[1], "AAPL240119C00190000")
	assert.Contains(t, lines[1], "01-19-24")
}

func TestScreenResult_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ScreenResult(&buf, FormatCSV, successResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "CS,S,T,Str,Exp ∨,IV,LP,B,A,V,OI,Y,SMP,SMDL,SMDH,LU,ITM", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "AAPL240119C00190000,AAPL,C,190,01-19-24,0.235"))
}

func TestScreenResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ScreenResult(&buf, FormatJSON, successResult()))

	var out struct {
		Outcome string `json:"outcome"`
		Table   struct {
			Columns []string `json:"columns"`
			Rows    [][]any  `json:"rows"`
		} `json:"table"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "success", out.Outcome)
	assert.Len(t, out.Table.Columns, 17)
	require.Len(t, out.Table.Rows, 1)
	assert.Equal(t, "AAPL240119C00190000", out.Table.Rows[0][0])
}

func TestScreenResult_MessageOnly(t *testing.T) {
	res := &models.ScreenResult{Outcome: models.OutcomeRequestFailed, Message: "Request Error: 500", Table: models.NewTable()}
	for _, f := range []string{FormatTable, FormatCSV} {
		var buf bytes.Buffer
		require.NoError(t, ScreenResult(&buf, f, res))
		assert.Equal(t, "Request Error: 500\n", buf.String())
	}
}

func TestValidationErrors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ValidationErrors(&buf, FormatTable, "p", nil))
	assert.Equal(t, "p: OK\n", buf.String())

	buf.Reset()
	errs := models.ValidationErrors{{Field: "limit", Value: "x", Reason: models.ReasonNotInteger}}
	require.NoError(t, ValidationErrors(&buf, FormatTable, "p", errs))
	assert.Equal(t, "limit : x, should be integer\n", buf.String())
}

func TestGreeks(t *testing.T) {
	points := []models.GreeksPoint{{Time: time.Date(2022, 1, 3, 15, 0, 0, 0, time.UTC), IV: 0.31, Delta: 0.5, Price: 182.01}}

	var buf bytes.Buffer
	require.NoError(t, Greeks(&buf, FormatCSV, "AAPL220121C00150000", points))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "time,iv,gamma,delta,theta,rho,vega,premium,price", lines[0])

	buf.Reset()
	require.NoError(t, Greeks(&buf, FormatTable, "X", nil))
	assert.Equal(t, "No historical greeks for X\n", buf.String())
}
