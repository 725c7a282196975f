package models

import (
	"time"
)

// User is a thin account record. Registration, password handling and
// session issuance live in the external auth service; this backend only
// needs stable identifiers and roles for ownership checks.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"uniqueIndex" json:"phone,omitempty"`
	Role      string    `gorm:"default:'rider'" json:"role"`
	Status    string    `gorm:"default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
