package comparison

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/senyabanana/procurement-service/internal/models"
)

// Compose формирует обоснование и итог для рекомендуемого предложения из total сравнённых.
// Примечания приводятся к нижнему регистру целиком.
func Compose(winner models.Proposal, total int) (reasoning, summary string) {
	price := message.NewPrinter(language.AmericanEnglish).Sprintf("%d", winner.TotalPrice)

	reasoning = fmt.Sprintf(
		"%s offers the best overall value with a competitive price of $%s and delivery in %d days. "+
			"Their %s provides excellent coverage, and %s",
		winner.VendorName, price, winner.DeliveryDays, winner.Warranty, strings.ToLower(winner.Notes))

	summary = fmt.Sprintf(
		"Based on our analysis of %d vendor proposals, we recommend %s as the optimal choice. "+
			"They provide the best balance of pricing, delivery timeline, and warranty terms "+
			"while meeting all technical specifications.",
		total, winner.VendorName)

	return reasoning, summary
}
