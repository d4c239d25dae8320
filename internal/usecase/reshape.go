package usecase

import (
	"OptScreen/internal/domain/models"
	"OptScreen/pkg/util"

	"github.com/shopspring/decimal"
)

const reportPrecision = 3

func round3(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(reportPrecision).Float64()
	return f
}

// Reshape projects remote records onto the 17 report columns. Expiration and
// last trade date become MM-DD-YY (UTC); yield and IV are rounded to 3 places.
func Reshape(records []models.OptionRecord) models.Table {
	t := models.NewTable()
	t.Rows = make([]models.ScreenerRow, 0, len(records))
	for _, r := range records {
		t.Rows = append(t.Rows, models.ScreenerRow{
			ContractSymbol:       r.ContractSymbol,
			Symbol:               r.Symbol,
			OptType:              r.OptType,
			Strike:               r.Strike,
			Expiration:           util.FormatUnixDate(r.Expiration),
			ImpliedVolatility:    round3(r.ImpliedVolatility),
			LastPrice:            r.LastPrice,
			Bid:                  r.Bid,
			Ask:                  r.Ask,
			Volume:               r.Volume,
			OpenInterest:         r.OpenInterest,
			Yield:                round3(r.Yield),
			RegularMarketPrice:   r.RegularMarketPrice,
			RegularMarketDayLow:  r.RegularMarketDayLow,
			RegularMarketDayHigh: r.RegularMarketDayHigh,
			LastTradeDate:        util.FormatUnixDate(r.LastTradeDate),
			InTheMoney:           r.InTheMoney,
		})
	}
	return t
}
