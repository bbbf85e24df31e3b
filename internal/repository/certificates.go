package repository

import (
	"context"
	"time"

	"github.com/aaryandewangan/japlearn-sub001/internal/database"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// ClaimCertificate issues a certificate for a category the user has
// qualified for. Claiming twice returns the original claim unchanged.
func ClaimCertificate(ctx context.Context, userID uint, category models.Category) (*models.CertificateClaim, error) {
	claim := &models.CertificateClaim{
		UserID:   userID,
		Category: category,
		Code:     uuid.NewString(),
		IssuedAt: time.Now().UTC(),
	}
	result := database.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(claim)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Already claimed; hand back the existing record.
		existing := &models.CertificateClaim{}
		err := database.DB.WithContext(ctx).
			Where("user_id = ? AND category = ?", userID, category).
			First(existing).Error
		return existing, err
	}
	return claim, nil
}

// GetCertificateByCode resolves a public verification code.
func GetCertificateByCode(ctx context.Context, code string) (*models.CertificateClaim, error) {
	var claim models.CertificateClaim
	err := database.DB.WithContext(ctx).First(&claim, "code = ?", code).Error
	return &claim, err
}

// ListCertificates returns the user's issued certificates.
func ListCertificates(ctx context.Context, userID uint) ([]models.CertificateClaim, error) {
	var claims []models.CertificateClaim
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issued_at ASC").
		Find(&claims).Error
	return claims, err
}

// CountCertificates returns how many certificates the user holds.
func CountCertificates(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).
		Model(&models.CertificateClaim{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
