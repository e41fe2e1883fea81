package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/leadintake/internal/payments"
	"github.com/angelmondragon/leadintake/pkg/db/models"
	"github.com/angelmondragon/leadintake/pkg/enums"
	pkgerrors "github.com/angelmondragon/leadintake/pkg/errors"
	"github.com/angelmondragon/leadintake/pkg/logger"
	"github.com/angelmondragon/leadintake/pkg/metrics"
	"github.com/angelmondragon/leadintake/pkg/pagination"
)

const (
	DefaultRecentLimit = pagination.DefaultLimit
	MaxRecentLimit     = pagination.MaxLimit
)

// Page is one slice of the newest-first lead listing.
type Page struct {
	Leads      []models.Lead
	NextCursor string
}

// Store is the persistence surface the service depends on.
type Store interface {
	Insert(ctx context.Context, lead *models.Lead) (int64, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.Lead, error)
	ListRecent(ctx context.Context, limit int) ([]models.Lead, error)
	ListBefore(ctx context.Context, beforeID int64, limit int) ([]models.Lead, error)
	ListAll(ctx context.Context) ([]models.Lead, error)
	Count(ctx context.Context) (int64, error)
}

// PaymentVerifier confirms that a checkout session has been paid.
type PaymentVerifier interface {
	VerifyPaid(ctx context.Context, sessionID string) (*payments.PaymentRecord, error)
}

// Service exposes the intake flows.
type Service interface {
	SubmitFree(ctx context.Context, in Submission) (*models.Lead, error)
	SubmitPaid(ctx context.Context, sessionID string, in Submission) (*models.Lead, error)
	Recent(ctx context.Context, limit int) ([]models.Lead, error)
	List(ctx context.Context, params pagination.Params) (*Page, error)
	All(ctx context.Context) ([]models.Lead, error)
	Count(ctx context.Context) (int64, error)
}

// ServiceParams groups the service dependencies. Verifier may be nil, in which
// case the paid flow reports a configuration error.
type ServiceParams struct {
	Store    Store
	Verifier PaymentVerifier
	Metrics  *metrics.LeadMetrics
	Logger   *logger.Logger
	Now      func() time.Time
}

type service struct {
	store    Store
	verifier PaymentVerifier
	metrics  *metrics.LeadMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the lead service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("lead store required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:    params.Store,
		verifier: params.Verifier,
		metrics:  params.Metrics,
		logg:     logg,
		now:      now,
	}, nil
}

func (s *service) SubmitFree(ctx context.Context, in Submission) (*models.Lead, error) {
	clean, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	lead := &models.Lead{
		CreatedAt: s.now().UTC(),
		Source:    enums.LeadSourceWeb,
		Name:      clean.Name,
		Email:     clean.Email,
		Message:   clean.Message,
	}
	if _, err := s.store.Insert(ctx, lead); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save lead")
	}

	s.metrics.IncSaved(lead.Source.String())
	s.logg.Info(s.logg.WithLeadID(ctx, lead.ID), "lead saved")
	return lead, nil
}

func (s *service) SubmitPaid(ctx context.Context, sessionID string, in Submission) (*models.Lead, error) {
	if s.verifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConfiguration, "stripe is not configured")
	}

	sessionID = strings.TrimSpace(sessionID)
	ctx = s.logg.WithSessionID(ctx, sessionID)

	record, err := s.verifier.VerifyPaid(ctx, sessionID)
	if err != nil {
		s.logg.Warn(ctx, "paid submission rejected by verifier")
		return nil, err
	}

	clean, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindBySessionID(ctx, record.SessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to check session")
	}
	if existing != nil {
		s.metrics.IncRejected("session_reused")
		return nil, sessionUsed()
	}

	paidAt := s.now().UTC()
	sid := record.SessionID
	lead := &models.Lead{
		CreatedAt:       paidAt,
		Source:          enums.LeadSourceWebPaid,
		Name:            clean.Name,
		Email:           clean.Email,
		Message:         clean.Message,
		Paid:            true,
		StripeSessionID: &sid,
		PaidAt:          &paidAt,
	}
	if _, err := s.store.Insert(ctx, lead); err != nil {
		if errors.Is(err, ErrDuplicateSession) {
			s.metrics.IncRejected("session_reused")
			return nil, sessionUsed()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to save lead")
	}

	s.metrics.IncSaved(lead.Source.String())
	s.logg.Info(s.logg.WithLeadID(ctx, lead.ID), "paid lead saved")
	return lead, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]models.Lead, error) {
	rows, err := s.store.ListRecent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list leads")
	}
	return rows, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor").
			WithDetails(map[string]any{"field": "cursor"})
	}
	var beforeID int64
	if cursor != nil {
		beforeID = cursor.BeforeID
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := s.store.ListBefore(ctx, beforeID, pagination.LimitWithBuffer(limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list leads")
	}

	page := &Page{Leads: rows}
	if len(rows) > limit {
		page.Leads = rows[:limit]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{BeforeID: page.Leads[limit-1].ID})
	}
	return page, nil
}

func (s *service) All(ctx context.Context) ([]models.Lead, error) {
	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list leads")
	}
	return rows, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to count leads")
	}
	return total, nil
}

func (s *service) validate(ctx context.Context, in Submission) (Submission, error) {
	clean, err := Validate(in)
	if err != nil {
		reason := RejectionReason(err)
		s.metrics.IncRejected(reason)
		s.logg.Warn(s.logg.WithField(ctx, "reason", reason), "submission rejected")
		return Submission{}, err
	}
	return clean, nil
}

// ClampLimit bounds a listing size to [1, MaxRecentLimit], defaulting
// non-positive values.
func ClampLimit(limit int) int {
	return pagination.NormalizeLimit(limit)
}

func sessionUsed() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "session already used")
}
