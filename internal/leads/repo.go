package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/leadintake/pkg/db"
	"github.com/angelmondragon/leadintake/pkg/db/models"
)

const sessionConstraint = "stripe_session_id"

// ErrDuplicateSession signals that a lead already references the payment session.
var ErrDuplicateSession = errors.New("stripe session already backs a lead")

// Repository persists leads. It is append-only: there is no update or delete.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a lead repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores lead and returns its store-assigned id.
func (r *Repository) Insert(ctx context.Context, lead *models.Lead) (int64, error) {
	if lead == nil {
		return 0, gorm.ErrInvalidValue
	}
	if lead.ID != 0 {
		return 0, fmt.Errorf("insert lead: id must be assigned by the store, got %d", lead.ID)
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		if lead.StripeSessionID != nil && db.IsUniqueViolation(err, sessionConstraint) {
			return 0, fmt.Errorf("%w: %v", ErrDuplicateSession, err)
		}
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return lead.ID, nil
}

// FindBySessionID returns the lead created from sessionID, or nil when none exists.
func (r *Repository) FindBySessionID(ctx context.Context, sessionID string) (*models.Lead, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, nil
	}

	var lead models.Lead
	err := r.db.WithContext(ctx).
		Where("stripe_session_id = ?", sessionID).
		Take(&lead).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find lead by session: %w", err)
	}
	return &lead, nil
}

// ListRecent returns up to limit leads, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Lead, error) {
	if limit <= 0 {
		return []models.Lead{}, nil
	}
	var rows []models.Lead
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recent leads: %w", err)
	}
	return rows, nil
}

// ListBefore returns up to limit leads with ids below beforeID, newest first.
// A zero beforeID starts from the newest lead.
func (r *Repository) ListBefore(ctx context.Context, beforeID int64, limit int) ([]models.Lead, error) {
	if limit <= 0 {
		return []models.Lead{}, nil
	}
	query := r.db.WithContext(ctx).Order("id DESC").Limit(limit)
	if beforeID > 0 {
		query = query.Where("id < ?", beforeID)
	}
	var rows []models.Lead
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list leads page: %w", err)
	}
	return rows, nil
}

// ListAll returns every lead, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Lead, error) {
	var rows []models.Lead
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return rows, nil
}

// Count returns the number of stored leads.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Lead{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return total, nil
}
