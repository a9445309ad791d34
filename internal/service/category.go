package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/edgomes/portfolio-backend/internal/model"
	"github.com/edgomes/portfolio-backend/internal/repository"
)

// CategoryService manages the admin-owned category reference data.
type CategoryService struct {
	repo     repository.CategoryRepository
	userRepo repository.UserRepository
	log      zerolog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, userRepo repository.UserRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, userRepo: userRepo, log: log}
}

// List is public; the site uses it for filters.
func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, actorID int64, req model.CategoryRequest) (*model.Category, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	category := &model.Category{Name: strings.TrimSpace(req.Name), Color: req.Color}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info().Str("name", category.Name).Msg("category created")
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, actorID, categoryID int64, req model.CategoryRequest) (*model.Category, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	category := &model.Category{ID: categoryID, Name: strings.TrimSpace(req.Name), Color: req.Color}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category; it fails with ErrCategoryInUse while any
// project still references it, leaving both sides unchanged.
func (s *CategoryService) Delete(ctx context.Context, actorID, categoryID int64) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return err
	}
	s.log.Info().Int64("category_id", categoryID).Msg("category deleted")
	return nil
}

func (s *CategoryService) requireAdmin(ctx context.Context, actorID int64) error {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin {
		return model.ErrForbidden
	}
	return nil
}

func validateCategory(req model.CategoryRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.ErrCategoryNameRequired
	}
	if utf8.RuneCountInString(name) > 50 {
		return model.ErrFieldTooLong
	}
	if !model.ValidColor(req.Color) {
		return model.ErrInvalidColor
	}
	return nil
}
