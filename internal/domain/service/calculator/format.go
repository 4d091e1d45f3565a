package calculator

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gold_tracker/internal/domain/entity"
)

const (
	notAvailable = "N/A"
	per100k      = 100000
)

var printer = message.NewPrinter(language.English) //nolint:gochecknoglobals

// FormatNumber группирует разряды: 10000 -> "10,000".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatCurrency печатает сумму в долларах. У целых сумм центы
// отбрасываются, остальные выводятся с двумя знаками.
func FormatCurrency(c Conversion) string {
	if !c.Available {
		return notAvailable
	}

	cents := math.Round(c.Value * 100) //nolint:mnd
	if cents == 0 {
		return "$0"
	}

	if math.Mod(cents, 100) == 0 { //nolint:mnd
		return printer.Sprintf("$%.0f", cents/100) //nolint:mnd
	}

	return printer.Sprintf("$%.2f", cents/100) //nolint:mnd
}

// FormatUnitPrice печатает цену одной единицы золота, например "$0.000085/gold".
func FormatUnitPrice(offer entity.Offer) string {
	if !offer.Priced() {
		return notAvailable
	}

	return "$" + strconv.FormatFloat(offer.PriceUSD, 'f', 6, 64) + "/gold"
}

// ValuePer100k цена 100 000 золота с шестью знаками или "" без цены.
func ValuePer100k(offer entity.Offer) string {
	if !offer.Priced() {
		return ""
	}

	return strconv.FormatFloat(per100k*offer.PriceUSD, 'f', 6, 64)
}
