package offer

import (
	stdjson "encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// plainNumberRe совпадает только с обычной десятичной записью числа
// (со знаком и экспонентой), без hex, Inf и NaN.
var plainNumberRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`) //nolint:gochecknoglobals

func parseServer(v any) string {
	switch x := v.(type) {
	case string:
		return strings.Join(strings.Fields(x), " ")
	case stdjson.Number:
		return strings.TrimSpace(x.String())
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return ""
		}

		return strconv.FormatFloat(x, 'f', -1, 64)
	}

	if n, ok := asInt64(v); ok {
		return strconv.FormatInt(n, 10)
	}

	return ""
}

// parsePrice возвращает конечную неотрицательную цену или 0, если значение
// отсутствует или не распознано.
func parsePrice(v any) float64 {
	var f float64

	switch x := v.(type) {
	case nil:
		return 0
	case string:
		f = parsePriceText(x)
	case stdjson.Number:
		f = parsePriceText(x.String())
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		n, ok := asInt64(v)
		if !ok {
			return 0
		}

		f = float64(n)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}

	return f
}

func parsePriceText(s string) float64 {
	s = strings.TrimSpace(s)

	if plainNumberRe.MatchString(s) {
		// Переполнение (ErrRange) тоже считается нераспознанной ценой.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}

		return f
	}

	digits, negative, ok := keepNumeric(s, true)
	if !ok {
		return 0
	}

	f, err := strconv.ParseFloat(resolveSeparators(digits), 64)
	if err != nil {
		return 0
	}

	if negative {
		return -f
	}

	return f
}

// resolveSeparators приводит разделители разрядов и дробной части к записи
// Go. Если есть оба вида, дробный тот, что правее. Одиночная запятая перед
// ровно тремя цифрами при ненулевой целой части считается разделителем разрядов.
func resolveSeparators(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return strings.ReplaceAll(s, ",", "")
		}

		whole, frac := s[:lastComma], s[lastComma+1:]
		if len(frac) == 3 && strings.TrimLeft(whole, "0") != "" {
			return whole + frac
		}

		return whole + "." + frac
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}

// parseOffers возвращает неотрицательное число предложений или 0.
func parseOffers(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return parseOffersText(x)
	case stdjson.Number:
		return parseOffersText(x.String())
	case float64:
		return truncate(x)
	case float32:
		return truncate(float64(x))
	}

	n, ok := asInt64(v)
	if !ok || n < 0 {
		return 0
	}

	return n
}

func parseOffersText(s string) int64 {
	digits, negative, ok := keepNumeric(s, false)
	if !ok || negative {
		return 0
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

func truncate(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0
	}

	return int64(f)
}

// keepNumeric оставляет только цифры (и '.' ',' при separators). Знак минус
// учитывается, только если стоит вплотную перед первой цифрой или перед
// разделителем, открывающим число ("-.5"). Разделители до числа и в его
// конце отбрасываются.
func keepNumeric(s string, separators bool) (string, bool, bool) {
	var (
		b            strings.Builder
		negative     bool
		digits       bool
		prev, before rune
	)

	isSeparator := func(r rune) bool {
		return separators && (r == '.' || r == ',')
	}

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if !digits {
				digits = true
				lead := isSeparator(prev)
				negative = prev == '-' || lead && before == '-'

				if lead {
					b.WriteRune(prev)
				}
			}

			b.WriteRune(r)
		case digits && isSeparator(r):
			b.WriteRune(r)
		}

		before, prev = prev, r
	}

	return strings.TrimRight(b.String(), ".,"), negative, digits
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return uintToInt64(uint64(x))
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return uintToInt64(x)
	}

	return 0, false
}

func uintToInt64(x uint64) (int64, bool) {
	if x > math.MaxInt64 {
		return 0, false
	}

	return int64(x), true
}
