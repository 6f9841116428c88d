package domain

// HealthResponse is the body of a liveness check.
type HealthResponse struct {
	Ping    string `json:"ping"`
	Version string `json:"version"`
}
