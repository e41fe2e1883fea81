package types

import (
	"time"

	"github.com/angelmondragon/leadintake/pkg/db/models"
)

// SubmitResult is the body returned by the JSON submission endpoint.
type SubmitResult struct {
	Saved bool  `json:"saved"`
	ID    int64 `json:"id"`
}

// LeadDTO is the public JSON shape of a stored lead.
type LeadDTO struct {
	ID        int64      `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Source    string     `json:"source"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	Paid      bool       `json:"paid"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// LeadList wraps a page of leads with the overall total.
type LeadList struct {
	Leads      []LeadDTO `json:"leads"`
	Total      int64     `json:"total"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

func NewLeadDTO(lead models.Lead) LeadDTO {
	return LeadDTO{
		ID:        lead.ID,
		CreatedAt: lead.CreatedAt.UTC(),
		Source:    lead.Source.String(),
		Name:      lead.Name,
		Email:     lead.Email,
		Message:   lead.Message,
		Paid:      lead.Paid,
		PaidAt:    lead.PaidAt,
	}
}

func NewLeadList(rows []models.Lead, total int64) LeadList {
	out := LeadList{Leads: make([]LeadDTO, 0, len(rows)), Total: total}
	for _, row := range rows {
		out.Leads = append(out.Leads, NewLeadDTO(row))
	}
	return out
}
