package models

import "time"

// Inquiry statuses.
const (
	InquiryPendiente  = "Pendiente"
	InquiryRespondida = "Respondida"
	InquiryEnProceso  = "En proceso"
	InquiryArchivada  = "Archivada"
)

// Inquiry priorities.
const (
	PriorityAlta  = "Alta"
	PriorityMedia = "Media"
	PriorityBaja  = "Baja"
)

type Inquiry struct {
	ID                string     `json:"id"`
	ClientName        string     `json:"client_name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	PropertyTitle     string     `json:"property_title"`
	PropertyImage     string     `json:"property_image"`
	Type              string     `json:"type"`
	Message           string     `json:"message"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	CreatedAt         time.Time  `json:"created_at"`
	LastResponse      *time.Time `json:"last_response"`
	ResponseTimeHours float64    `json:"response_time_hours"`
	Agent             string     `json:"agent"`
	Source            string     `json:"source"`
	Budget            string     `json:"budget"`
	Location          string     `json:"location"`
}

// InquiryStats summarizes the currently visible inquiries.
type InquiryStats struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Responded    int `json:"responded"`
	HighPriority int `json:"high_priority"`
}
