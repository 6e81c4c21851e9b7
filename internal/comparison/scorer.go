// Package comparison ранжирует предложения поставщиков по одному RFP и объясняет выбор.
package comparison

import (
	"math"
	"regexp"
	"strconv"

	"github.com/senyabanana/procurement-service/internal/models"
)

// MinProposals - минимальное число предложений для сравнения.
const MinProposals = 2

var warrantyYearsRe = regexp.MustCompile(`(?i)(\d+)\s*years?`)

// Compare выбирает рекомендуемое предложение. Возвращает false, если предложений меньше MinProposals.
// Предложения относятся к одному RFP, в результат попадает rfpId первого.
func Compare(proposals []models.Proposal) (*models.ComparisonResult, bool) {
	if len(proposals) < MinProposals {
		return nil, false
	}

	winnerIdx := 0
	for i := 1; i < len(proposals); i++ {
		if proposals[i].AIScore > proposals[winnerIdx].AIScore {
			winnerIdx = i
		}
	}
	winner := proposals[winnerIdx]

	minPrice, minDays, maxYears := proposals[0].TotalPrice, proposals[0].DeliveryDays, 0
	for _, p := range proposals {
		minPrice = min(minPrice, p.TotalPrice)
		minDays = min(minDays, p.DeliveryDays)
		maxYears = max(maxYears, warrantyYears(p.Warranty))
	}

	metrics := make([]models.ProposalMetrics, len(proposals))
	for i, p := range proposals {
		metrics[i] = models.ProposalMetrics{
			ProposalID:      p.ID,
			LowestPrice:     p.TotalPrice == minPrice,
			FastestDelivery: p.DeliveryDays == minDays,
			Recommended:     i == winnerIdx,
			Band:            models.BandFor(p.AIScore),
		}
	}

	scores := models.ComparisonScores{
		Price:    ratioScore(minPrice, winner.TotalPrice),
		Delivery: ratioScore(minDays, winner.DeliveryDays),
		Terms:    100,
		Overall:  winner.AIScore,
	}
	if maxYears > 0 {
		scores.Terms = ratioScore(warrantyYears(winner.Warranty), maxYears)
	}

	reasoning, summary := Compose(winner, len(proposals))

	return &models.ComparisonResult{
		RFPID:     proposals[0].RFPID,
		Proposals: append([]models.Proposal(nil), proposals...),
		Metrics:   metrics,
		Recommendation: models.ComparisonRecommendation{
			VendorID:   winner.VendorID,
			VendorName: winner.VendorName,
			Reasoning:  reasoning,
			Scores:     scores,
			Band:       models.BandFor(winner.AIScore),
		},
		Summary: summary,
	}, true
}

// ratioScore приводит num/den к [0,100]. При нулевом знаменателе оценка 100.
func ratioScore(num, den int) int {
	if den <= 0 {
		return 100
	}
	score := int(math.Round(100 * float64(num) / float64(den)))
	return max(0, min(100, score))
}

// warrantyYears суммирует все упоминания "<N> year(s)": "3 years + 1 year extended" даёт 4.
func warrantyYears(warranty string) int {
	total := 0
	for _, m := range warrantyYearsRe.FindAllStringSubmatch(warranty, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			total += n
		}
	}
	return total
}
