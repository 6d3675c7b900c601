// Package review はレビュー管理のドメインロジックを提供する。
package review

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/repository"
	"github.com/hitoshi/cookbook/internal/validation"
)

// CreateReviewInput はレビュー作成リクエストの入力。
type CreateReviewInput struct {
	RecipeID string `json:"recipeId" validate:"required,objectid"`
	UserID   string `json:"userId" validate:"required,objectid"`
	Rating   int    `json:"rating" validate:"rating"`
	Comment  string `json:"comment"`
}

// UpdateReviewInput はレビュー更新リクエストの入力。nilのフィールドは更新対象外。
type UpdateReviewInput struct {
	Rating  *int    `json:"rating" validate:"omitnil,rating"`
	Comment *string `json:"comment" validate:"omitnil,min=1"`
}

// AddCommentInput はレビューへの返信コメント追加リクエストの入力。
type AddCommentInput struct {
	UserID  string `json:"userId" validate:"required,objectid"`
	Comment string `json:"comment" validate:"required"`
}

// Service はレビュー管理のサービス層。
// CRUDに加えて、レビューへの返信コメント追加を提供する。
type Service struct {
	reviewRepo repository.ReviewRepository
	recipeRepo repository.RecipeRepository
	validator  *validation.Validator
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	reviewRepo repository.ReviewRepository,
	recipeRepo repository.RecipeRepository,
	validator *validation.Validator,
) *Service {
	return &Service{
		reviewRepo: reviewRepo,
		recipeRepo: recipeRepo,
		validator:  validator,
	}
}

// Create はレビューを新規作成する。対象レシピの存在を事前に確認する。
func (s *Service) Create(ctx context.Context, input CreateReviewInput) (*model.Review, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	recipeID, _ := bson.ObjectIDFromHex(input.RecipeID)
	userID, _ := bson.ObjectIDFromHex(input.UserID)

	recipe, err := s.recipeRepo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if recipe == nil {
		return nil, model.NewNotFoundError("Recipe")
	}

	now := time.Now()
	review := &model.Review{
		RecipeID:  recipeID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		Comments:  []model.ReviewComment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return created, nil
}

// List は全レビューを返す。
func (s *Service) List(ctx context.Context) ([]*model.Review, error) {
	reviews, err := s.reviewRepo.List(ctx)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return reviews, nil
}

// GetByID はIDでレビューを取得する。存在しない場合はNotFoundエラーを返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if review == nil {
		return nil, model.NewNotFoundError("Review")
	}
	return review, nil
}

// Update はレビューを部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateReviewInput) (*model.Review, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	params := repository.UpdateReviewParams{
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	review, err := s.reviewRepo.Update(ctx, id, params)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if review == nil {
		return nil, model.NewNotFoundError("Review")
	}
	return review, nil
}

// Delete はレビューを削除する。存在しない場合はNotFoundエラーを返す。
func (s *Service) Delete(ctx context.Context, id string) error {
	review, err := s.reviewRepo.Delete(ctx, id)
	if err != nil {
		return model.NewPersistenceError(err)
	}
	if review == nil {
		return model.NewNotFoundError("Review")
	}
	return nil
}

// AddComment はレビューに返信コメントを追加する。
// 同一ユーザーによる同一本文のコメントが既に存在する場合は
// 追加せず、既存のレビューをそのまま返す。
func (s *Service) AddComment(ctx context.Context, id string, input AddCommentInput) (*model.Review, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if review == nil {
		return nil, model.NewNotFoundError("Review")
	}

	userID, _ := bson.ObjectIDFromHex(input.UserID)

	for _, c := range review.Comments {
		if c.UserID == userID && c.Comment == input.Comment {
			return review, nil
		}
	}

	comment := model.ReviewComment{
		UserID:    userID,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}
	if _, err := s.reviewRepo.PushComment(ctx, id, comment); err != nil {
		return nil, model.NewPersistenceError(err)
	}

	review.Comments = append(review.Comments, comment)
	return review, nil
}
