package loan

import (
	"time"

	"github.com/amirasaad/finhub/pkg/domain/loan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Table         = "loans"
	ColID         = "id"
	ColLenderID   = "lender_id"
	ColBorrowerID = "borrower_id"
	ColDueDate    = "due_date"
	ColStatus     = "status"
	ColRepaidAt   = "repaid_at"
)

// Loan represents a loan record in the database.
type Loan struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	LenderID   uuid.UUID       `gorm:"column:lender_id;type:uuid;index"`
	BorrowerID uuid.UUID       `gorm:"column:borrower_id;type:uuid;index"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric"`
	DueDate    time.Time       `gorm:"column:due_date"`
	Status     string          `gorm:"column:status"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	RepaidAt   *time.Time      `gorm:"column:repaid_at"`
}

// TableName specifies the table name for the Loan model.
func (Loan) TableName() string {
	return Table
}

func mapModelToDomain(m *Loan) *loan.Loan {
	return &loan.Loan{
		ID:         m.ID,
		LenderID:   m.LenderID,
		BorrowerID: m.BorrowerID,
		Amount:     m.Amount,
		DueAt:      m.DueDate,
		Status:     loan.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		RepaidAt:   m.RepaidAt,
	}
}

func mapDomainToModel(l *loan.Loan) *Loan {
	return &Loan{
		ID:         l.ID,
		LenderID:   l.LenderID,
		BorrowerID: l.BorrowerID,
		Amount:     l.Amount,
		DueDate:    l.DueAt,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
		RepaidAt:   l.RepaidAt,
	}
}
