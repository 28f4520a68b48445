package entities

type HealthStatus string

const (
	Healthy      HealthStatus = "healthy"
	ShuttingDown HealthStatus = "shutting_down"
)

type HealthResponse struct {
	Status HealthStatus `json:"status"`
}
