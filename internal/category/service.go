// Package category はカテゴリ管理のドメインロジックを提供する。
package category

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/repository"
	"github.com/hitoshi/cookbook/internal/validation"
)

// CreateCategoryInput はカテゴリ作成リクエストの入力。
type CreateCategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateCategoryInput はカテゴリ更新リクエストの入力。nilのフィールドは更新対象外。
type UpdateCategoryInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Description *string `json:"description" validate:"omitnil,min=1"`
}

// AddRecipeInput はカテゴリへのレシピ追加リクエストの入力。
type AddRecipeInput struct {
	RecipeID string `json:"recipeId" validate:"required,objectid"`
}

// Service はカテゴリ管理のサービス層。
// CRUDに加えて、レシピとカテゴリの関連付けを提供する。
type Service struct {
	categoryRepo repository.CategoryRepository
	recipeRepo   repository.RecipeRepository
	validator    *validation.Validator
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	categoryRepo repository.CategoryRepository,
	recipeRepo repository.RecipeRepository,
	validator *validation.Validator,
) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		recipeRepo:   recipeRepo,
		validator:    validator,
	}
}

// Create はカテゴリを新規作成する。
func (s *Service) Create(ctx context.Context, input CreateCategoryInput) (*model.Category, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	now := time.Now()
	category := &model.Category{
		Name:        input.Name,
		Description: input.Description,
		Recipes:     []bson.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return created, nil
}

// List は全カテゴリを返す。
func (s *Service) List(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return categories, nil
}

// GetByID はIDでカテゴリを取得する。存在しない場合はNotFoundエラーを返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if category == nil {
		return nil, model.NewNotFoundError("Category")
	}
	return category, nil
}

// Update はカテゴリを部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateCategoryInput) (*model.Category, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	params := repository.UpdateCategoryParams{
		Name:        input.Name,
		Description: input.Description,
	}

	category, err := s.categoryRepo.Update(ctx, id, params)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if category == nil {
		return nil, model.NewNotFoundError("Category")
	}
	return category, nil
}

// Delete はカテゴリを削除する。存在しない場合はNotFoundエラーを返す。
func (s *Service) Delete(ctx context.Context, id string) error {
	category, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return model.NewPersistenceError(err)
	}
	if category == nil {
		return model.NewNotFoundError("Category")
	}
	return nil
}

// AddRecipe はレシピをカテゴリのレシピ一覧に追加する。
// 追加は$addToSetで行うため、同じレシピを複数回追加しても
// 一覧には一度だけ現れる。
func (s *Service) AddRecipe(ctx context.Context, id string, input AddRecipeInput) error {
	if fields := s.validator.Struct(input); fields != nil {
		return model.NewValidationError(fields)
	}

	recipeID, _ := bson.ObjectIDFromHex(input.RecipeID)

	recipe, err := s.recipeRepo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return model.NewPersistenceError(err)
	}
	if recipe == nil {
		return model.NewNotFoundError("Recipe")
	}

	matched, err := s.categoryRepo.AddRecipe(ctx, id, recipeID)
	if err != nil {
		return model.NewPersistenceError(err)
	}
	if !matched {
		return model.NewNotFoundError("Category")
	}
	return nil
}
