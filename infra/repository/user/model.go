package user

import (
	"time"

	"github.com/amirasaad/finhub/pkg/domain/user"
	"github.com/google/uuid"
)

// Table and column names as defined by the frontend schema.
const (
	Table          = "users"
	ColID          = "id"
	ColClerkUserID = "clerkUserId"
	ColEmail       = "email"
	ColName        = "name"
	ColCreatedAt   = "createdAt"
	ColUpdatedAt   = "updatedAt"
)

// User represents a user record in the database.
type User struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ClerkUserID string    `gorm:"column:clerkUserId;uniqueIndex;not null"`
	Email       string    `gorm:"column:email;uniqueIndex;not null"`
	Name        string    `gorm:"column:name"`
	CreatedAt   time.Time `gorm:"column:createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return Table
}

func mapModelToDomain(m *User) *user.User {
	return &user.User{
		ID:          m.ID,
		ClerkUserID: m.ClerkUserID,
		Email:       m.Email,
		Name:        m.Name,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func mapDomainToModel(u *user.User) *User {
	return &User{
		ID:          u.ID,
		ClerkUserID: u.ClerkUserID,
		Email:       u.Email,
		Name:        u.Name,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
