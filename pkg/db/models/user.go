package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. Authentication state beyond the password
// hash (sessions, reset tokens) lives in Redis.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string     `gorm:"column:email;not null;uniqueIndex:users_email_key"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// CustomerProfile mirrors the checkout contact fields for a user. It prefills
// the order form and is updated from the profile page.
type CustomerProfile struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name;not null;default:''"`
	LastName  string    `gorm:"column:last_name;not null;default:''"`
	Email     string    `gorm:"column:email;not null;default:''"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	Address   string    `gorm:"column:address;not null;default:''"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
