package models

import "time"

// CertificateClaim is an issued certificate for a category the user has
// passed at every difficulty. Code is the public verification handle.
type CertificateClaim struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_cert_user_category" json:"user_id"`
	Category Category  `gorm:"type:varchar(16);not null;uniqueIndex:idx_cert_user_category" json:"category"`
	Code     string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}
