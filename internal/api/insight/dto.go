package insight

type InsightResponse struct {
	Month           string   `json:"month"`
	Recommendations []string `json:"recommendations"`
}
