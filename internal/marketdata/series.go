package marketdata

import "strings"

// Well-known FRED series identifiers.
const (
	SeriesMortgage30Year = "MORTGAGE30US"
	SeriesCaseShiller    = "CSUSHPISA"
)

// seriesAliases maps friendly names to series identifiers.
var seriesAliases = map[string]string{
	"average_30_year": SeriesMortgage30Year,
	"mortgage-30":     SeriesMortgage30Year,
	"case-shiller":    SeriesCaseShiller,
	"s&p corelogic case-shiller u.s. national home price index": SeriesCaseShiller,
}

// ResolveSeries returns the series identifier for a friendly name. Unknown
// names are assumed to already be identifiers.
func ResolveSeries(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := seriesAliases[key]; ok {
		return id
	}
	return strings.TrimSpace(name)
}
