package service

import (
	"context"
	"fmt"
	"strings"

	"commons/internal/models"
	"commons/internal/pagination"
	"commons/internal/repository"
	"commons/internal/validation"
)

type CategoryService struct {
	categoryRepo  repository.CategoryRepository
	communityRepo repository.CommunityRepository
	postRepo      repository.PostRepository
}

type CreateCategoryInput struct {
	CommunityID uint
	Name        string
	Description string
}

type UpdateCategoryInput struct {
	CommunityID uint
	CategoryID  uint
	Name        string
	Description string
}

type ListCategoriesInput struct {
	CommunityID uint
	Limit       int
	Page        int
}

type MigratePostsInput struct {
	CommunityID    uint
	FromCategoryID uint
	ToCategoryID   uint
}

func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	communityRepo repository.CommunityRepository,
	postRepo repository.PostRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo:  categoryRepo,
		communityRepo: communityRepo,
		postRepo:      postRepo,
	}
}

// ListCategories returns one page of the community's categories plus the
// total page count. An empty listing is NOT_FOUND, not an empty page.
func (s *CategoryService) ListCategories(ctx context.Context, in ListCategoriesInput) ([]*models.Category, int, error) {
	if _, err := s.communityRepo.GetByID(ctx, in.CommunityID); err != nil {
		return nil, 0, notFoundOrStore(err, "Community", in.CommunityID)
	}

	count, err := s.categoryRepo.CountByCommunity(ctx, in.CommunityID)
	if err != nil {
		return nil, 0, models.NewStoreError(err)
	}
	if count == 0 {
		return nil, 0, models.NewNotFoundMessageError("No categories found for this community")
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	window := pagination.Paginate(count, in.Limit, page)

	categories, err := s.categoryRepo.ListByCommunity(ctx, in.CommunityID, window.Limit, window.Offset)
	if err != nil {
		return nil, 0, models.NewStoreError(err)
	}
	return categories, window.TotalPages, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, communityID, categoryID uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetForCommunity(ctx, categoryID, communityID)
	if err != nil {
		return nil, notFoundOrStore(err, "Category", categoryID)
	}
	return category, nil
}

// CreateCategory adds a category to the community. Names are unique within
// the community regardless of case; "General" and "general" collide.
func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategoryName(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.communityRepo.GetByID(ctx, in.CommunityID); err != nil {
		return nil, notFoundOrStore(err, "Community", in.CommunityID)
	}

	nameKey := strings.ToLower(in.Name)
	exists, err := s.categoryRepo.NameKeyExists(ctx, in.CommunityID, nameKey, 0)
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	if exists {
		return nil, models.NewConflictError("Category name already in use in this community")
	}

	communityID := in.CommunityID
	category := &models.Category{
		Name:        in.Name,
		NameKey:     nameKey,
		Description: in.Description,
		CommunityID: &communityID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, models.NewStoreError(err)
	}
	return category, nil
}

// CheckName reports whether the community already uses the category name,
// compared case-insensitively. ignoreID excludes the category being renamed.
func (s *CategoryService) CheckName(ctx context.Context, communityID uint, name string, ignoreID uint) (bool, error) {
	if name == "" {
		return false, models.NewValidationError("name is required")
	}
	exists, err := s.categoryRepo.NameKeyExists(ctx, communityID, strings.ToLower(name), ignoreID)
	if err != nil {
		return false, models.NewStoreError(err)
	}
	return exists, nil
}

// UpdateCategory applies a partial update. Empty fields are left untouched.
func (s *CategoryService) UpdateCategory(ctx context.Context, in UpdateCategoryInput) (*models.Category, error) {
	category, err := s.categoryRepo.GetForCommunity(ctx, in.CategoryID, in.CommunityID)
	if err != nil {
		return nil, notFoundOrStore(err, "Category", in.CategoryID)
	}

	if in.Name != "" && in.Name != category.Name {
		if err := validation.ValidateCategoryName(in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		nameKey := strings.ToLower(in.Name)
		exists, err := s.categoryRepo.NameKeyExists(ctx, in.CommunityID, nameKey, category.ID)
		if err != nil {
			return nil, models.NewStoreError(err)
		}
		if exists {
			return nil, models.NewConflictError("Category name already in use in this community")
		}
		category.Name = in.Name
		category.NameKey = nameKey
	}
	if in.Description != "" {
		category.Description = in.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, models.NewStoreError(err)
	}
	return category, nil
}

// DeleteCategory removes an empty category. Categories that still hold posts
// must have them migrated away first.
func (s *CategoryService) DeleteCategory(ctx context.Context, communityID, categoryID uint) error {
	category, err := s.categoryRepo.GetForCommunity(ctx, categoryID, communityID)
	if err != nil {
		return notFoundOrStore(err, "Category", categoryID)
	}

	count, err := s.postRepo.CountByCategories(ctx, []uint{category.ID})
	if err != nil {
		return models.NewStoreError(err)
	}
	if count > 0 {
		return models.NewConflictError(
			fmt.Sprintf("Category still has %d posts; migrate them to another category first", count))
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return notFoundOrStore(err, "Category", categoryID)
	}
	return nil
}

// MigratePosts moves every post from one category to another within the same
// community and reports how many moved. The source ends up empty.
func (s *CategoryService) MigratePosts(ctx context.Context, in MigratePostsInput) (int64, error) {
	if in.FromCategoryID == in.ToCategoryID {
		return 0, models.NewValidationError("Source and target categories must differ")
	}
	if _, err := s.categoryRepo.GetForCommunity(ctx, in.FromCategoryID, in.CommunityID); err != nil {
		return 0, notFoundOrStore(err, "Category", in.FromCategoryID)
	}
	if _, err := s.categoryRepo.GetForCommunity(ctx, in.ToCategoryID, in.CommunityID); err != nil {
		return 0, notFoundOrStore(err, "Category", in.ToCategoryID)
	}

	moved, err := s.postRepo.Reassign(ctx, in.FromCategoryID, in.ToCategoryID)
	if err != nil {
		return 0, models.NewStoreError(err)
	}
	return moved, nil
}
