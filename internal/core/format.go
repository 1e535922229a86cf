package core

// format.go renders raw fixture values for display.
//
// Every function here fails soft: input that cannot be parsed is returned
// verbatim (or as a fallback form) instead of an error, so one bad cell never
// blocks a table from rendering.

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown for null values in the table view.
const Placeholder = "—"

// moneyRegex matches "USD 1,234.56": ISO code, whitespace, amount with
// optional thousands separators and decimals.
var moneyRegex = regexp.MustCompile(`^([A-Z]{3})\s+([\d,]+(?:\.\d+)?)$`)

// Display layouts, matching the medium date style of en-US.
const (
	dateLayout     = "Jan 2, 2006"
	dateTimeLayout = "Jan 2, 2006, 3:04 PM"
)

// Input layouts tried in order. Zoned layouts first so offsets are kept.
var dateInputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Money is a parsed money string.
type Money struct {
	Currency string
	Amount   decimal.Decimal
}

// ParseMoneyString parses "USD 1,234.56". Malformed input returns ok=false.
func ParseMoneyString(s string) (Money, bool) {
	m := moneyRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Money{}, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(m[2], ",", ""))
	if err != nil {
		return Money{}, false
	}

	return Money{Currency: m[1], Amount: amount}, true
}

// Formatter renders numbers, currencies and dates for one locale.
// A Formatter is safe for concurrent use.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// DefaultFormatter formats for en-US.
var DefaultFormatter = &Formatter{tag: language.AmericanEnglish, printer: message.NewPrinter(language.AmericanEnglish)}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Number formats x with locale grouping and up to maxFraction decimals.
func (f *Formatter) Number(x float64, maxFraction int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Sprint(x)
	}
	return f.printer.Sprint(number.Decimal(x, number.MaxFractionDigits(maxFraction)))
}

// Integer formats n with locale grouping: 1200000 -> "1,200,000".
func (f *Formatter) Integer(n int64) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Currency formats amount in the given ISO currency using its narrow symbol
// and standard number of decimals, e.g. "$1,234.50" or "-€12.00".
// Unknown codes fall back to "<CODE> <localized number>".
func (f *Formatter) Currency(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil || unit == (currency.Unit{}) {
		return code + " " + f.Number(amount.InexactFloat64(), 3)
	}

	scale, _ := currency.Standard.Rounding(unit)
	symbol := f.printer.Sprint(currency.NarrowSymbol(unit))

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	digits := f.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.Scale(scale)))
	return sign + symbol + digits
}

// CurrencyFloat is Currency for a float64 amount.
func (f *Formatter) CurrencyFloat(amount float64, code string) string {
	return f.Currency(decimal.NewFromFloat(amount), code)
}

// USD formats amount as US dollars.
func (f *Formatter) USD(amount float64) string {
	return f.CurrencyFloat(amount, "USD")
}

// NullableCurrency renders Placeholder for a null amount.
func (f *Formatter) NullableCurrency(v pgtype.Float8, code string) string {
	if !v.Valid {
		return Placeholder
	}
	return f.CurrencyFloat(v.Float64, code)
}

// MoneyString reformats a money string for display; unparseable input is
// returned unchanged.
func (f *Formatter) MoneyString(s string) string {
	m, ok := ParseMoneyString(s)
	if !ok {
		return s
	}
	return f.Currency(m.Amount, m.Currency)
}

// Percent renders "12.34%" or Placeholder for null.
func (f *Formatter) Percent(v pgtype.Float8) string {
	if !v.Valid {
		return Placeholder
	}
	return fmt.Sprintf("%.2f%%", v.Float64)
}

// NullableInteger renders a grouped integer or Placeholder for null.
func (f *Formatter) NullableInteger(v pgtype.Int8) string {
	if !v.Valid {
		return Placeholder
	}
	return f.Integer(v.Int64)
}

// Date renders a date as "Jan 2, 2006"; unparseable input is returned verbatim.
func (f *Formatter) Date(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(dateLayout)
}

// DateTime renders "Jan 2, 2006, 3:04 PM"; unparseable input is returned verbatim.
func (f *Formatter) DateTime(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(dateTimeLayout)
}

// NullableDate renders Placeholder for a null date.
func (f *Formatter) NullableDate(v pgtype.Text) string {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return Placeholder
	}
	return f.Date(v.String)
}

// ParseDate tries the supported layouts in order.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Package-level helpers using DefaultFormatter.

// FormatCurrency formats with DefaultFormatter.
func FormatCurrency(amount float64, code string) string {
	return DefaultFormatter.CurrencyFloat(amount, code)
}

// FormatMoneyString formats with DefaultFormatter.
func FormatMoneyString(s string) string {
	return DefaultFormatter.MoneyString(s)
}

// FormatDate formats with DefaultFormatter.
func FormatDate(s string) string {
	return DefaultFormatter.Date(s)
}
