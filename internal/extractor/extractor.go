// Package extractor превращает текстовый запрос на закупку в черновик RFP.
//
// Разбор эвристический: ищутся бюджет, срок поставки, ноутбуки, мониторы и объём RAM.
// Всё, что не найдено, заполняется значениями по умолчанию.
package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/senyabanana/procurement-service/internal/models"
)

const (
	DefaultBudget       = 25000
	DefaultDeliveryDays = 30
	DefaultTitle        = "New Procurement Request"
	DefaultPaymentTerms = "Net 30 after delivery"
	DefaultWarranty     = "1 year manufacturer warranty"

	// MaxAmount - верхняя граница суммы и количества, которую принимают обе схемы хранения.
	MaxAmount = math.MaxInt32

	laptopStandardSpecs = "Standard configuration"
	monitorSpecs        = `27" 4K Resolution`
	titleSuffix         = " Procurement"
)

var (
	dollarAmountRe = regexp.MustCompile(`\$(\d[\d,]*)`)
	bareAmountRe   = regexp.MustCompile(`\d[\d,]*`)
	deliveryDaysRe = regexp.MustCompile(`(?i)(\d+)\s*days?`)
	laptopRe       = regexp.MustCompile(`(?i)(\d+)\s*laptops?`)
	monitorRe      = regexp.MustCompile(`(?i)(\d+)\s*monitors?`)
	ramRe          = regexp.MustCompile(`(?i)(\d+)\s*GB\s*RAM`)
)

// Result - черновик и признак того, что список позиций взят по умолчанию.
type Result struct {
	RFP          models.RFP
	UsedDefaults bool
}

// Extract возвращает черновик RFP. ID и CreatedAt заполняет хранилище.
func Extract(input string) models.RFP {
	return Parse(input).RFP
}

// Parse - то же, что Extract, но сообщает, сработал ли хоть один шаблон позиций.
func Parse(input string) Result {
	items := parseItems(input)
	usedDefaults := len(items) == 0
	title := DefaultTitle
	if usedDefaults {
		items = []models.RFPItem{defaultItem()}
	} else {
		title = titleFor(items)
	}

	return Result{
		RFP: models.RFP{
			Title:        title,
			Description:  input,
			Budget:       parseBudget(input),
			DeliveryDays: parseDeliveryDays(input),
			Items:        items,
			PaymentTerms: DefaultPaymentTerms,
			Warranty:     DefaultWarranty,
			Status:       models.DraftRFP,
			SentTo:       []string{},
		},
		UsedDefaults: usedDefaults,
	}
}

// parseBudget берёт сумму в долларах, а если её нет - первое число в тексте.
func parseBudget(input string) int {
	raw := ""
	if m := dollarAmountRe.FindStringSubmatch(input); m != nil {
		raw = m[1]
	} else if m := bareAmountRe.FindString(input); m != "" {
		raw = m
	}
	if raw == "" {
		return DefaultBudget
	}
	budget, ok := parseAmount(strings.ReplaceAll(raw, ",", ""))
	if !ok {
		return DefaultBudget
	}
	return budget
}

func parseDeliveryDays(input string) int {
	if days, ok := firstCount(deliveryDaysRe, input); ok {
		return days
	}
	return DefaultDeliveryDays
}

func parseItems(input string) []models.RFPItem {
	var items []models.RFPItem

	if qty, ok := firstCount(laptopRe, input); ok {
		specs := laptopStandardSpecs
		if m := ramRe.FindStringSubmatch(input); m != nil {
			specs = m[1] + "GB RAM, Intel i7, 512GB SSD"
		}
		items = append(items, models.RFPItem{Name: "Laptop", Quantity: qty, Specs: specs})
	}
	if qty, ok := firstCount(monitorRe, input); ok {
		items = append(items, models.RFPItem{Name: "Monitor", Quantity: qty, Specs: monitorSpecs})
	}
	return items
}

// firstCount возвращает число из первого совпадения re. Ноль считается отсутствием совпадения.
func firstCount(re *regexp.Regexp, input string) (int, bool) {
	m := re.FindStringSubmatch(input)
	if m == nil {
		return 0, false
	}
	n, ok := parseAmount(m[1])
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseAmount отбрасывает значения больше MaxAmount.
func parseAmount(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n > MaxAmount {
		return 0, false
	}
	return n, true
}

func titleFor(items []models.RFPItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, strconv.Itoa(item.Quantity)+"x "+item.Name)
	}
	return strings.Join(parts, " + ") + titleSuffix
}

func defaultItem() models.RFPItem {
	return models.RFPItem{Name: "Item 1", Quantity: 10, Specs: "Standard specifications"}
}
