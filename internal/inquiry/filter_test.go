package inquiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmolista/server/internal/models"
)

func testInquiries() []models.Inquiry {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []models.Inquiry{
		{
			ID: "1", ClientName: "Beatriz Álvarez", Email: "beatriz@example.com",
			PropertyTitle: "Apartamento en Laureles", Message: "Quisiera una visita",
			Status: models.InquiryPendiente, Priority: models.PriorityAlta,
			Agent: "Carlos Ruiz", Source: "sitio web", Type: "visita",
			CreatedAt: base.Add(3 * time.Hour), ResponseTimeHours: 0,
		},
		{
			ID: "2", ClientName: "Álvaro Núñez", Email: "alvaro@example.com",
			PropertyTitle: "Casa en Envigado", Message: "Información de financiación",
			Status: models.InquiryRespondida, Priority: models.PriorityMedia,
			Agent: "Laura Mejía", Source: "teléfono", Type: "financiación",
			CreatedAt: base.Add(1 * time.Hour), ResponseTimeHours: 12,
		},
		{
			ID: "3", ClientName: "ana maría rojas", Email: "ana@example.com",
			PropertyTitle: "Local en el centro", Message: "¿Sigue disponible?",
			Status: models.InquiryPendiente, Priority: models.PriorityBaja,
			Agent: "Carlos Ruiz", Source: "referido", Type: "información",
			CreatedAt: base.Add(2 * time.Hour), ResponseTimeHours: 48,
		},
	}
}

func TestApply_SearchSpansFourFields(t *testing.T) {
	inquiries := testInquiries()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"client name", "beatriz", []string{"1"}},
		{"email", "alvaro@", []string{"2"}},
		{"property title", "laureles", []string{"1"}},
		{"message body", "financiación", []string{"2"}},
		{"no match", "bodega", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Apply(inquiries, FilterConfig{Search: tt.search}, SortRecent, true)
			ids := make([]string, 0, len(out))
			for _, inq := range out {
				ids = append(ids, inq.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestApply_CategoricalFilters(t *testing.T) {
	inquiries := testInquiries()

	out := Apply(inquiries, FilterConfig{Status: models.InquiryPendiente}, SortRecent, true)
	assert.Len(t, out, 2)

	out = Apply(inquiries, FilterConfig{Priority: models.PriorityAlta}, SortRecent, true)
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].ID)

	out = Apply(inquiries, FilterConfig{Agent: "Carlos Ruiz", Source: "referido"}, SortRecent, true)
	require.Len(t, out, 1)
	assert.Equal(t, "3", out[0].ID)

	out = Apply(inquiries, FilterConfig{Type: All, Status: All}, SortRecent, true)
	assert.Len(t, out, 3)
}

func TestApply_PrioritySort(t *testing.T) {
	inquiries := testInquiries()

	// Alta > Media > Baja, descending
	out := Apply(inquiries, FilterConfig{}, SortPriority, false)
	require.Len(t, out, 3)
	assert.Equal(t, models.PriorityAlta, out[0].Priority)
	assert.Equal(t, models.PriorityMedia, out[1].Priority)
	assert.Equal(t, models.PriorityBaja, out[2].Priority)

	out = Apply(inquiries, FilterConfig{}, SortPriority, true)
	assert.Equal(t, models.PriorityBaja, out[0].Priority)
}

func TestApply_ResponseTimeSort(t *testing.T) {
	inquiries := testInquiries()

	out := Apply(inquiries, FilterConfig{}, SortResponseTime, true)
	require.Len(t, out, 3)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "2", out[1].ID)
	assert.Equal(t, "3", out[2].ID)

	out = Apply(inquiries, FilterConfig{}, SortResponseTime, false)
	assert.Equal(t, "3", out[0].ID)
}

func TestApply_NameSortIsLocaleAware(t *testing.T) {
	inquiries := testInquiries()

	// Accents and case must not push names out of alphabetical order.
	out := Apply(inquiries, FilterConfig{}, SortName, true)
	require.Len(t, out, 3)
	assert.Equal(t, "Álvaro Núñez", out[0].ClientName)
	assert.Equal(t, "ana maría rojas", out[1].ClientName)
	assert.Equal(t, "Beatriz Álvarez", out[2].ClientName)
}

func TestApply_RecentSortDirection(t *testing.T) {
	inquiries := testInquiries()

	out := Apply(inquiries, FilterConfig{}, SortRecent, false)
	require.Len(t, out, 3)
	assert.Equal(t, "1", out[0].ID) // newest first when descending

	out = Apply(inquiries, FilterConfig{}, SortRecent, true)
	assert.Equal(t, "2", out[0].ID)
}

func TestStats(t *testing.T) {
	stats := Stats(testInquiries())

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Responded)
	assert.Equal(t, 1, stats.HighPriority)
}

func TestStats_RecomputedFromFilteredView(t *testing.T) {
	inquiries := testInquiries()
	visible := Apply(inquiries, FilterConfig{Status: models.InquiryPendiente}, SortRecent, false)
	stats := Stats(visible)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 0, stats.Responded)
}
