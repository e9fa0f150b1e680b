package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"account_backend/internal/feature/user/usecase"
)

// revocationGorm stores revoked token ids in the database.
// It is used when no redis is configured.
type revocationGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// Compile-time check to ensure revocationGorm implements TokenRevoker.
var _ usecase.TokenRevoker = (*revocationGorm)(nil)

// NewRevocationStore creates a new instance of revocationGorm.
func NewRevocationStore(db *gorm.DB) *revocationGorm {
	return &revocationGorm{db: db, now: time.Now}
}

// Revoke records jti as revoked until expiresAt. Revoking again replaces the expiry.
func (r *revocationGorm) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	m := RevokedTokenModel{JTI: jti, CreatedAt: r.now()}
	if !expiresAt.IsZero() {
		m.ExpiresAt = &expiresAt
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "jti"}},
			DoUpdates: clause.AssignmentColumns([]string{"expires_at"}),
		}).
		Create(&m).Error
}

// IsRevoked reports whether jti is currently revoked.
func (r *revocationGorm) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RevokedTokenModel{}).
		Where("jti = ? AND (expires_at IS NULL OR expires_at > ?)", jti, r.now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteExpired removes entries whose tokens can no longer verify.
func (r *revocationGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", r.now()).
		Delete(&RevokedTokenModel{})
	return result.RowsAffected, result.Error
}
