package views

import (
	"net/http"
	"time"

	"github.com/angelmondragon/leadintake/pkg/db/models"
)

type HomeView struct {
	Title string
}

type HomePaidView struct {
	Title       string
	ProductName string
	Price       string
}

type ThanksView struct {
	Title string
}

type AdminRow struct {
	ID        int64
	CreatedAt string
	Source    string
	Name      string
	Email     string
	Message   string
}

type AdminView struct {
	Title string
	Leads []AdminRow
	Total int64
}

type UnauthorizedView struct {
	Title string
}

type IntakeView struct {
	Title     string
	SessionID string
	Email     string
}

type PaidConfirmationView struct {
	Title  string
	LeadID int64
}

type ErrorView struct {
	Title   string
	Heading string
	Message string
	BackURL string
	// RequestID is shown so visitors can quote it when reporting a problem.
	RequestID string
}

// NewAdminView converts stored leads into table rows.
func NewAdminView(rows []models.Lead, total int64) AdminView {
	view := AdminView{Title: "Leads", Leads: make([]AdminRow, 0, len(rows)), Total: total}
	for _, lead := range rows {
		view.Leads = append(view.Leads, AdminRow{
			ID:        lead.ID,
			CreatedAt: lead.CreatedAt.UTC().Format(time.RFC3339),
			Source:    lead.Source.String(),
			Name:      lead.Name,
			Email:     lead.Email,
			Message:   lead.Message,
		})
	}
	return view
}

// NewErrorView builds the error page for status.
func NewErrorView(status int, message, backURL string) ErrorView {
	if backURL == "" {
		backURL = "/"
	}
	heading := http.StatusText(status)
	if heading == "" {
		heading = "Error"
	}
	return ErrorView{
		Title:   heading,
		Heading: heading,
		Message: message,
		BackURL: backURL,
	}
}
