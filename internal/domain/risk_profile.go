package domain

// RiskProfile is derived from a holding set and can always be recomputed.
// Scores are on a 1-10 scale, except SectorConcentration and GeographicRisk
// which are plain percentages (0-100).
type RiskProfile struct {
	OverallRiskScore    float64  `json:"overallRiskScore"`
	ConcentrationRisk   float64  `json:"concentrationRisk"`
	HerfindahlIndex     float64  `json:"herfindahlIndex"`
	SectorConcentration float64  `json:"sectorConcentration"`
	GeographicRisk      float64  `json:"geographicRisk"`
	VolatilityScore     float64  `json:"volatilityScore"`
	CreditRisk          float64  `json:"creditRisk"`
	Findings            Findings `json:"findings"`
}
