package entities

import "time"

// ServiceStatus reports the reachability of one backing dependency of the
// registry, such as the postgres pool or the ORM handle.
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// HealthCheckResponse is the /healthCheck payload: per-dependency statuses
// plus process uptime. Status is "ok" only while every dependency is.
type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services"`
	UpSince  time.Time                `json:"up_since"`
	Uptime   string                   `json:"uptime"`
}
