package output

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/rpgo/property-projector/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return FormatFloatCurrency(amount.Round(2).InexactFloat64())
}

// FormatFloatCurrency formats a simulated value as USD.
func FormatFloatCurrency(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// FormatPercentage formats a decimal already in percent with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.065) as a percentage (6.50%).
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

// FormatFraction formats a float fraction as a percentage.
func FormatFraction(f float64) string {
	return strconv.FormatFloat(f*100, 'f', 2, 64) + "%"
}

// FormatRatio renders a schedule ratio as a percentage, or "n/a" when undefined.
func FormatRatio(r domain.Ratio) string {
	if !r.Valid {
		return "n/a"
	}
	return FormatRate(r.Value)
}

// ratioCell is the CSV form of a ratio: the fraction, or empty when undefined.
func ratioCell(r domain.Ratio) string {
	if !r.Valid {
		return ""
	}
	return r.Value.String()
}

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func optionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return floatToString(*f)
}

func intToString(i int) string { return strconv.Itoa(i) }
