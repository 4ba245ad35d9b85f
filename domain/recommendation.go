package domain

// ScoredAssessment pairs a catalog row with a relevance score for one query.
// Higher score means more relevant. Ephemeral, produced per query.
type ScoredAssessment struct {
	Assessment Assessment `json:"assessment"`
	Score      float64    `json:"score"`
}

// RecommendationResponse is the wire shape of POST /recommend.
type RecommendationResponse struct {
	RecommendedAssessments []Assessment `json:"recommended_assessments"`
}

// VectorDocument is a catalog entry prepared for the vector store.
type VectorDocument struct {
	Name   string
	Vector []float32
}

// VectorHit is a nearest-neighbour match returned by the vector store.
type VectorHit struct {
	Name  string
	Score float64
}
