package model

// Scheduler health as reported on the status endpoint.
const (
	HealthHealthy  = "healthy"
	HealthWarning  = "warning"
	HealthCritical = "critical"
)

// RefreshState is the scheduler's externally visible state. LastRefresh is
// the persisted timestamp of the last successful cycle (RFC3339, "" before
// the first one); RetryCount and the rest are transient.
type RefreshState struct {
	State       string `json:"state"`
	LastRefresh string `json:"lastRefresh,omitempty"`
	RetryCount  int    `json:"retryCount"`
	Health      string `json:"health"`
	LastError   string `json:"lastError,omitempty"`
	LastCycleID string `json:"lastCycleId,omitempty"`
}
