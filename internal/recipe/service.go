// Package recipe はレシピ管理のドメインロジックを提供する。
package recipe

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/repository"
	"github.com/hitoshi/cookbook/internal/validation"
)

// CreateRecipeInput はレシピ作成リクエストの入力。
type CreateRecipeInput struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1"`
	Instructions []string `json:"instructions" validate:"required,min=1"`
	CategoryID   string   `json:"categoryId" validate:"required,objectid"`
	PublisherID  string   `json:"publisherId" validate:"required,objectid"`
	Image        string   `json:"image"`
}

// UpdateRecipeInput はレシピ更新リクエストの入力。
// nilのフィールドは更新対象外。値が指定された場合のみ検証して反映する。
type UpdateRecipeInput struct {
	Title        *string   `json:"title" validate:"omitnil,min=1"`
	Description  *string   `json:"description" validate:"omitnil,min=1"`
	Ingredients  *[]string `json:"ingredients" validate:"omitnil,min=1"`
	Instructions *[]string `json:"instructions" validate:"omitnil,min=1"`
	CategoryID   *string   `json:"categoryId" validate:"omitnil,objectid"`
	PublisherID  *string   `json:"publisherId" validate:"omitnil,objectid"`
	Image        *string   `json:"image"`
}

// Service はレシピ管理のサービス層。
// 作成、一覧、取得、部分更新、削除のビジネスロジックを提供する。
type Service struct {
	recipeRepo repository.RecipeRepository
	validator  *validation.Validator
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(recipeRepo repository.RecipeRepository, validator *validation.Validator) *Service {
	return &Service{
		recipeRepo: recipeRepo,
		validator:  validator,
	}
}

// Create はレシピを新規作成する。
func (s *Service) Create(ctx context.Context, input CreateRecipeInput) (*model.Recipe, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	// objectidルールを通過しているのでここでのエラーはない
	categoryID, _ := bson.ObjectIDFromHex(input.CategoryID)
	publisherID, _ := bson.ObjectIDFromHex(input.PublisherID)

	now := time.Now()
	recipe := &model.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		CategoryID:   categoryID,
		PublisherID:  publisherID,
		Image:        input.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.recipeRepo.Create(ctx, recipe)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return created, nil
}

// List は全レシピを返す。
func (s *Service) List(ctx context.Context) ([]*model.Recipe, error) {
	recipes, err := s.recipeRepo.List(ctx)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return recipes, nil
}

// GetByID はIDでレシピを取得する。存在しない場合はNotFoundエラーを返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if recipe == nil {
		return nil, model.NewNotFoundError("Recipe")
	}
	return recipe, nil
}

// Update はレシピを部分更新する。指定されたフィールドのみ反映し、
// updated_atは入力が空でも常に更新される。
func (s *Service) Update(ctx context.Context, id string, input UpdateRecipeInput) (*model.Recipe, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	params := repository.UpdateRecipeParams{
		Title:        input.Title,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		Image:        input.Image,
	}
	if input.CategoryID != nil {
		categoryID, _ := bson.ObjectIDFromHex(*input.CategoryID)
		params.CategoryID = &categoryID
	}
	if input.PublisherID != nil {
		publisherID, _ := bson.ObjectIDFromHex(*input.PublisherID)
		params.PublisherID = &publisherID
	}

	recipe, err := s.recipeRepo.Update(ctx, id, params)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if recipe == nil {
		return nil, model.NewNotFoundError("Recipe")
	}
	return recipe, nil
}

// Delete はレシピを削除する。存在しない場合はNotFoundエラーを返す。
func (s *Service) Delete(ctx context.Context, id string) error {
	recipe, err := s.recipeRepo.Delete(ctx, id)
	if err != nil {
		return model.NewPersistenceError(err)
	}
	if recipe == nil {
		return model.NewNotFoundError("Recipe")
	}
	return nil
}
