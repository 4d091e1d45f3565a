package marketplace

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gold_tracker/internal/domain/entity"
)

var (
	sellerSelectors = []string{".offer-seller a", ".text-body1.ellipsis-2-lines", ".text-h6"} //nolint:gochecknoglobals
	priceSelectors  = []string{".offer-price-amount", ".price"}                               //nolint:gochecknoglobals
	stockSelectors  = []string{".offer-stock", ".stock"}                                      //nolint:gochecknoglobals

	priceRe  = regexp.MustCompile(`(?i)([0-9][0-9.,]*)\s*USD`)  //nolint:gochecknoglobals
	offersRe = regexp.MustCompile(`(?i)(\d[\d,]*)\s+offers?\b`) //nolint:gochecknoglobals
)

// Extractor читает карточки предложений со страницы категории. Он только
// находит значения: они отдаются текстом, разбором занимается нормализатор.
type Extractor struct {
	cardSelector string
	serverRe     *regexp.Regexp
}

func NewExtractor(cardSelector, region string) *Extractor {
	if cardSelector == "" {
		cardSelector = DefaultCardSelector
	}

	if region == "" {
		region = DefaultRegion
	}

	return &Extractor{
		cardSelector: cardSelector,
		serverRe:     regexp.MustCompile(`(?im)^\s*(.+?)\s*-\s*` + regexp.QuoteMeta(region)),
	}
}

// Extract возвращает по кандидату на каждую карточку сервера из нужного региона.
func (e *Extractor) Extract(r io.Reader) ([]entity.RawOffer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	return e.ExtractDocument(doc), nil
}

func (e *Extractor) ExtractDocument(doc *goquery.Document) []entity.RawOffer {
	result := make([]entity.RawOffer, 0)

	doc.Find(e.cardSelector).Each(func(_ int, card *goquery.Selection) {
		if candidate, ok := e.extractCard(card); ok {
			result = append(result, candidate)
		}
	})

	return result
}

func (e *Extractor) extractCard(card *goquery.Selection) (entity.RawOffer, bool) {
	text := card.Text()

	server := e.matchServer(firstText(card, sellerSelectors))
	if server == "" {
		server = e.matchServer(text)
	}

	if server == "" {
		return entity.RawOffer{}, false
	}

	candidate := entity.RawOffer{Server: server}

	if price := firstText(card, priceSelectors); price != "" {
		candidate.PriceUSD = price
	} else if m := priceRe.FindStringSubmatch(text); m != nil {
		candidate.PriceUSD = m[1]
	}

	if stock := firstText(card, stockSelectors); stock != "" {
		candidate.Offers = stock
	} else if m := offersRe.FindStringSubmatch(text); m != nil {
		candidate.Offers = m[1]
	}

	return candidate, true
}

func (e *Extractor) matchServer(text string) string {
	m := e.serverRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	return strings.TrimSpace(m[1])
}

func firstText(card *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(card.Find(selector).First().Text()); text != "" {
			return text
		}
	}

	return ""
}
