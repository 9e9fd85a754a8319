package service

import (
	"context"

	"github.com/google/uuid"

	"cantinho-algarvio/internal/catalog"
	"cantinho-algarvio/internal/domain"
)

type DishRepository interface {
	FetchPage(ctx context.Context, q catalog.Query) ([]domain.Dish, int, error)
	GetDish(ctx context.Context, id string) (*domain.Dish, error)
	CreateDish(ctx context.Context, dish *domain.Dish) error
	UpdateDish(ctx context.Context, dish *domain.Dish) error
	DeleteDish(ctx context.Context, id string) (int64, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type DishServiceInterface interface {
	Get(ctx context.Context, id string) (*domain.Dish, error)
	Create(ctx context.Context, dish *domain.Dish) error
	Update(ctx context.Context, dish *domain.Dish) error
	Delete(ctx context.Context, id string) (int64, error)
	Categories(ctx context.Context) ([]string, error)
}

type DishService struct {
	repo DishRepository
}

func NewDishService(repo DishRepository) *DishService {
	return &DishService{repo: repo}
}

func (s *DishService) Get(ctx context.Context, id string) (*domain.Dish, error) {
	return s.repo.GetDish(ctx, id)
}

func (s *DishService) Create(ctx context.Context, dish *domain.Dish) error {
	if dish.ID == "" {
		dish.ID = uuid.NewString()
	}
	return s.repo.CreateDish(ctx, dish)
}

func (s *DishService) Update(ctx context.Context, dish *domain.Dish) error {
	return s.repo.UpdateDish(ctx, dish)
}

func (s *DishService) Delete(ctx context.Context, id string) (int64, error) {
	return s.repo.DeleteDish(ctx, id)
}

func (s *DishService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

var _ DishServiceInterface = (*DishService)(nil)
