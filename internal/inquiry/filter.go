package inquiry

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"inmolista/server/internal/models"
)

// SortKey selects the ordering of the inquiry list.
type SortKey string

const (
	SortRecent       SortKey = "recent"
	SortName         SortKey = "name"
	SortPriority     SortKey = "priority"
	SortResponseTime SortKey = "responseTime"
)

// All is the sentinel for categorical filters meaning "no constraint".
const All = "all"

// collator does locale-aware name comparison.
var collator = collate.New(language.Spanish)

var priorityRank = map[string]int{
	models.PriorityAlta:  3,
	models.PriorityMedia: 2,
	models.PriorityBaja:  1,
}

// FilterConfig is one immutable snapshot of the active inquiry filters.
type FilterConfig struct {
	Search   string
	Type     string
	Status   string
	Priority string
	Agent    string
	Source   string
}

func active(field string) bool {
	return field != "" && field != All
}

// Matches evaluates every active predicate against inq (logical AND).
// The free-text search spans client name, email, property title and
// message body.
func (c FilterConfig) Matches(inq *models.Inquiry) bool {
	if c.Search != "" {
		q := strings.ToLower(c.Search)
		if !strings.Contains(strings.ToLower(inq.ClientName), q) &&
			!strings.Contains(strings.ToLower(inq.Email), q) &&
			!strings.Contains(strings.ToLower(inq.PropertyTitle), q) &&
			!strings.Contains(strings.ToLower(inq.Message), q) {
			return false
		}
	}

	if active(c.Type) && inq.Type != c.Type {
		return false
	}
	if active(c.Status) && inq.Status != c.Status {
		return false
	}
	if active(c.Priority) && inq.Priority != c.Priority {
		return false
	}
	if active(c.Agent) && inq.Agent != c.Agent {
		return false
	}
	if active(c.Source) && inq.Source != c.Source {
		return false
	}

	return true
}

// Apply returns the ordered subset of inquiries satisfying cfg. Unlike the
// listing engine, the sort direction is an explicit flag independent of the
// key. The input slice is never mutated.
func Apply(inquiries []models.Inquiry, cfg FilterConfig, key SortKey, ascending bool) []models.Inquiry {
	out := make([]models.Inquiry, 0, len(inquiries))
	for i := range inquiries {
		if cfg.Matches(&inquiries[i]) {
			out = append(out, inquiries[i])
		}
	}
	sortInquiries(out, key, ascending)
	return out
}

func sortInquiries(inquiries []models.Inquiry, key SortKey, ascending bool) {
	var less func(i, j int) bool
	switch key {
	case SortName:
		less = func(i, j int) bool {
			return collator.CompareString(inquiries[i].ClientName, inquiries[j].ClientName) < 0
		}
	case SortPriority:
		less = func(i, j int) bool {
			return priorityRank[inquiries[i].Priority] < priorityRank[inquiries[j].Priority]
		}
	case SortResponseTime:
		less = func(i, j int) bool {
			return inquiries[i].ResponseTimeHours < inquiries[j].ResponseTimeHours
		}
	default: // SortRecent
		less = func(i, j int) bool {
			return inquiries[i].CreatedAt.Before(inquiries[j].CreatedAt)
		}
	}

	if ascending {
		sort.SliceStable(inquiries, less)
	} else {
		sort.SliceStable(inquiries, func(i, j int) bool { return less(j, i) })
	}
}

// Stats reduces the currently visible inquiries to the workspace counters.
func Stats(inquiries []models.Inquiry) models.InquiryStats {
	stats := models.InquiryStats{Total: len(inquiries)}
	for i := range inquiries {
		switch inquiries[i].Status {
		case models.InquiryPendiente:
			stats.Pending++
		case models.InquiryRespondida:
			stats.Responded++
		}
		if inquiries[i].Priority == models.PriorityAlta {
			stats.HighPriority++
		}
	}
	return stats
}
