package models

// Metrics is the admin dashboard summary
type Metrics struct {
	TotalAppointments int64          `json:"total_appointments"`
	TodayAppointments int64          `json:"today_appointments"`
	EstimatedRevenue  float64        `json:"estimated_revenue"`
	TopServices       []ServiceUsage `json:"top_services"`
}

// ServiceUsage counts non-cancelled appointments per service
type ServiceUsage struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
