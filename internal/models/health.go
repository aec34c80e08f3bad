package models

// HealthResponse reports the loaded model to liveness probes.
type HealthResponse struct {
	Status      string `json:"status"`
	ServiceDate string `json:"service_date"`
	Stops       int    `json:"stops"`
	Patterns    int    `json:"patterns"`
	Trips       int    `json:"trips"`
}
