package format

import (
	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Indonesian)

// Rupiah renders an amount as Indonesian rupiah with zero decimal places,
// e.g. 100000 -> "Rp 100.000". Accepts the loose numeric shapes the API
// emits (float, int, numeric string).
func Rupiah(amount any) string {
	var v float64
	if m, ok := amount.(interface{ Float64() float64 }); ok {
		v = m.Float64()
	} else {
		var err error
		if v, err = cast.ToFloat64E(amount); err != nil {
			v = 0
		}
	}
	return printer.Sprintf("Rp %v", number.Decimal(v, number.MaxFractionDigits(0)))
}
