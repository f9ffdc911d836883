package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
)

type BannedIPRepository struct {
	db *gorm.DB
}

func NewBannedIPRepository(db *gorm.DB) *BannedIPRepository {
	return &BannedIPRepository{db: db}
}

func (r *BannedIPRepository) Exists(ctx context.Context, ip string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BannedIP{}).
		Where("ip = ?", ip).Count(&count).Error
	return count > 0, translate(err)
}

// Upsert inserts the ban, refreshing the reason when the IP is already listed.
func (r *BannedIPRepository) Upsert(ctx context.Context, ban *domain.BannedIP) error {
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason"}),
	}).Create(ban).Error)
}

func (r *BannedIPRepository) Delete(ctx context.Context, ip string) error {
	res := r.db.WithContext(ctx).Delete(&domain.BannedIP{}, "ip = ?", ip)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BannedIPRepository) List(ctx context.Context) ([]domain.BannedIP, error) {
	var bans []domain.BannedIP
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&bans).Error
	return bans, translate(err)
}
