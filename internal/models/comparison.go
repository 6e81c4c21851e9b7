package models

type ScoreBand string // Диапазон оценки для индикаторов

const (
	HighScore   ScoreBand = "high"
	MediumScore ScoreBand = "medium"
	LowScore    ScoreBand = "low"
)

// BandFor возвращает диапазон для оценки в [0,100].
func BandFor(score int) ScoreBand {
	switch {
	case score >= 85:
		return HighScore
	case score >= 70:
		return MediumScore
	default:
		return LowScore
	}
}

// ComparisonScores - оценки рекомендованного предложения по критериям.
type ComparisonScores struct {
	Price    int `json:"price"`
	Delivery int `json:"delivery"`
	Terms    int `json:"terms"`
	Overall  int `json:"overall"`
}

// ComparisonRecommendation описывает выбранного поставщика.
type ComparisonRecommendation struct {
	VendorID   string           `json:"vendorId"`
	VendorName string           `json:"vendorName"`
	Reasoning  string           `json:"reasoning"`
	Scores     ComparisonScores `json:"scores"`
	Band       ScoreBand        `json:"band"`
}

// ProposalMetrics - признаки строки таблицы сравнения.
type ProposalMetrics struct {
	ProposalID      string    `json:"proposalId"`
	LowestPrice     bool      `json:"lowestPrice"`
	FastestDelivery bool      `json:"fastestDelivery"`
	Recommended     bool      `json:"recommended"`
	Band            ScoreBand `json:"band"`
}

// ComparisonResult - результат сравнения предложений. Вычисляется на лету и не хранится.
type ComparisonResult struct {
	RFPID          string                   `json:"rfpId"`
	Proposals      []Proposal               `json:"proposals"`
	Metrics        []ProposalMetrics        `json:"metrics"`
	Recommendation ComparisonRecommendation `json:"recommendation"`
	Summary        string                   `json:"summary"`
}
