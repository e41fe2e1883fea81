package models

import (
	"time"

	"github.com/angelmondragon/leadintake/pkg/enums"
)

// Lead is a prospective customer's contact submission. Rows are append-only.
type Lead struct {
	ID              int64            `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedAt       time.Time        `gorm:"column:created_at;not null"`
	Source          enums.LeadSource `gorm:"column:source;type:text;not null;default:web"`
	Name            string           `gorm:"column:name;not null"`
	Email           string           `gorm:"column:email;not null"`
	Message         string           `gorm:"column:message;not null"`
	Paid            bool             `gorm:"column:paid;not null;default:false"`
	StripeSessionID *string          `gorm:"column:stripe_session_id;uniqueIndex:leads_stripe_session_id_key"`
	PaidAt          *time.Time       `gorm:"column:paid_at"`
}

func (Lead) TableName() string {
	return "leads"
}
