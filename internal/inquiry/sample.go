package inquiry

import (
	"time"

	"inmolista/server/internal/models"
)

// SampleInquiries returns the seed collection used when no backend is wired
// for inquiries. Timestamps are relative to now so the recent sort stays
// meaningful.
func SampleInquiries() []models.Inquiry {
	now := time.Now()
	respondedAt := now.Add(-20 * time.Hour)
	return []models.Inquiry{
		{
			ID:            "1",
			ClientName:    "María González",
			Email:         "maria.gonzalez@example.com",
			Phone:         "+57 300 123 4567",
			PropertyTitle: "Apartamento moderno en El Poblado",
			PropertyImage: "https://images.example.com/propiedades/poblado-101.jpg",
			Type:          "visita",
			Message:       "Quisiera agendar una visita este fin de semana, ¿hay disponibilidad el sábado?",
			Status:        models.InquiryPendiente,
			Priority:      models.PriorityAlta,
			CreatedAt:     now.Add(-6 * time.Hour),
			Agent:         "Carlos Ruiz",
			Source:        "sitio web",
			Budget:        "$450.000.000 - $520.000.000",
			Location:      "Medellín",
		},
		{
			ID:                "2",
			ClientName:        "Andrés Patiño",
			Email:             "andres.patino@example.com",
			Phone:             "+57 311 987 6543",
			PropertyTitle:     "Casa campestre en Rionegro",
			PropertyImage:     "https://images.example.com/propiedades/rionegro-12.jpg",
			Type:              "financiación",
			Message:           "¿Aceptan crédito hipotecario? Necesito información sobre los requisitos.",
			Status:            models.InquiryRespondida,
			Priority:          models.PriorityMedia,
			CreatedAt:         now.Add(-48 * time.Hour),
			LastResponse:      &respondedAt,
			ResponseTimeHours: 28,
			Agent:             "Laura Mejía",
			Source:            "portal inmobiliario",
			Budget:            "$800.000.000 - $950.000.000",
			Location:          "Rionegro",
		},
		{
			ID:            "3",
			ClientName:    "Camila Torres",
			Email:         "camila.torres@example.com",
			Phone:         "+57 320 555 0199",
			PropertyTitle: "Oficina en Ciudad del Río",
			PropertyImage: "https://images.example.com/propiedades/cdr-33.jpg",
			Type:          "información",
			Message:       "¿El precio de administración está incluido en el canon? Gracias.",
			Status:        models.InquiryEnProceso,
			Priority:      models.PriorityBaja,
			CreatedAt:     now.Add(-72 * time.Hour),
			Agent:         "Carlos Ruiz",
			Source:        "teléfono",
			Budget:        "$5.000.000 / mes",
			Location:      "Medellín",
		},
		{
			ID:            "4",
			ClientName:    "Jorge Ramírez",
			Email:         "jorge.ramirez@example.com",
			Phone:         "+57 315 222 8833",
			PropertyTitle: "Chalet en Las Palmas",
			PropertyImage: "https://images.example.com/propiedades/palmas-7.jpg",
			Type:          "oferta",
			Message:       "Estoy interesado en hacer una oferta por debajo del precio publicado.",
			Status:        models.InquiryPendiente,
			Priority:      models.PriorityAlta,
			CreatedAt:     now.Add(-12 * time.Hour),
			Agent:         "Laura Mejía",
			Source:        "referido",
			Budget:        "$1.200.000.000",
			Location:      "Envigado",
		},
		{
			ID:            "5",
			ClientName:    "Lucía Herrera",
			Email:         "lucia.herrera@example.com",
			Phone:         "+57 301 444 7700",
			PropertyTitle: "Local comercial en Laureles",
			PropertyImage: "https://images.example.com/propiedades/laureles-21.jpg",
			Type:          "visita",
			Message:       "Busco un local para cafetería, ¿el sector permite ese uso comercial?",
			Status:        models.InquiryArchivada,
			Priority:      models.PriorityMedia,
			CreatedAt:     now.Add(-120 * time.Hour),
			Agent:         "Carlos Ruiz",
			Source:        "sitio web",
			Budget:        "$7.500.000 / mes",
			Location:      "Medellín",
		},
	}
}
