package export

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way the printed documents show it:
// "Rp 1.500.000". Amounts are whole rupiah at this granularity.
func FormatRupiah(v float64) string {
	return printer.Sprintf("Rp %d", int64(math.Round(v)))
}

// FormatPercent renders a margin with one decimal, e.g. "20,0%".
func FormatPercent(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}
