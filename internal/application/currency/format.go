package currency

import (
	"github.com/mercado/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Colombian pesos are shown without decimals and with dot thousands
// separators, the way local storefronts print prices.
var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

var symbols = map[valueobject.Currency]string{
	valueobject.COP: "$",
	valueobject.USD: "US$",
	valueobject.EUR: "€",
	valueobject.GBP: "£",
}

// Format renders a Money value for display. COP amounts drop their decimals,
// everything else carries two.
func Format(m valueobject.Money) string {
	symbol, ok := symbols[m.Currency()]
	if !ok {
		symbol = string(m.Currency())
	}
	if m.Currency() == valueobject.COP {
		return copPrinter.Sprintf("%s %d", symbol, m.Amount().Round(0).IntPart())
	}
	return symbol + " " + m.Amount().StringFixed(2)
}

// FormatCOP renders a COP amount for display, e.g. "$ 1.234.567"
func FormatCOP(amount decimal.Decimal) string {
	return Format(valueobject.NewMoneyCOP(amount))
}
