package domain

// HealthStatus is the liveness payload of GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// ServicesHealth is the readiness payload of GET /health/services:
// an overall verdict plus one entry per downstream service.
type ServicesHealth struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
