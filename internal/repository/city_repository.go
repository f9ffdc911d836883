package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
)

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) List(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	err := r.db.WithContext(ctx).Order("sort_order asc, name asc").Find(&cities).Error
	return cities, translate(err)
}

func (r *CityRepository) Create(ctx context.Context, c *domain.City) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CityRepository) Update(ctx context.Context, c *domain.City) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *CityRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.City{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
