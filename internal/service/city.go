package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
)

// CityStore is the persistence surface of the deliverable-city registry.
type CityStore interface {
	List(ctx context.Context) ([]domain.City, error)
	Create(ctx context.Context, c *domain.City) error
	Update(ctx context.Context, c *domain.City) error
	Delete(ctx context.Context, id uint) error
}

type CityService struct {
	store CityStore
}

func NewCityService(store CityStore) *CityService {
	return &CityService{store: store}
}

func (s *CityService) List(ctx context.Context) ([]domain.City, error) {
	return s.store.List(ctx)
}

func (s *CityService) Create(ctx context.Context, req domain.CreateCityRequest) (*domain.City, error) {
	value := req.Value
	if value == "" {
		value = req.Name
	}
	city := &domain.City{
		Name:      req.Name,
		Value:     Slugify(value),
		Zone:      req.Zone,
		SortOrder: req.SortOrder,
	}
	if city.Value == "" {
		return nil, errors.New("City name produces an empty value")
	}
	if err := s.store.Create(ctx, city); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("A city with value %s already exists", city.Value)
		}
		return nil, err
	}
	return city, nil
}

func (s *CityService) Update(ctx context.Context, id uint, req domain.CreateCityRequest) (*domain.City, error) {
	value := req.Value
	if value == "" {
		value = req.Name
	}
	city := &domain.City{
		ID:        id,
		Name:      req.Name,
		Value:     Slugify(value),
		Zone:      req.Zone,
		SortOrder: req.SortOrder,
	}
	if city.Value == "" {
		return nil, errors.New("City name produces an empty value")
	}
	if err := s.store.Update(ctx, city); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("A city with value %s already exists", city.Value)
		}
		return nil, err
	}
	return city, nil
}

func (s *CityService) Delete(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}
