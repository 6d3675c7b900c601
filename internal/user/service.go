// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"time"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/repository"
	"github.com/hitoshi/cookbook/internal/validation"
)

// CreateUserInput はユーザー作成リクエストの入力。
// OAuthログインを経由せず、管理者が直接ユーザーを登録する際に使う。
type CreateUserInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Provider   string `json:"provider" validate:"required,oneof=github google"`
	ProviderID string `json:"providerId" validate:"required"`
	Bio        string `json:"bio"`
	AvatarURL  string `json:"avatarUrl"`
}

// UpdateUserInput はユーザー更新リクエストの入力。nilのフィールドは更新対象外。
type UpdateUserInput struct {
	Email     *string `json:"email" validate:"omitnil,email"`
	Name      *string `json:"name" validate:"omitnil,min=1"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

// Service はユーザー管理のサービス層。
type Service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	validator   *validation.Validator
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	validator *validation.Validator,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		validator:   validator,
	}
}

// Create はユーザーを新規作成する。
// (provider, providerId) が既に登録済みの場合は作成せず、既存ユーザーと
// created=false を返す。挿入時に一意制約違反が起きた場合は同時登録と
// みなして既存ユーザーを引き直す。
func (s *Service) Create(ctx context.Context, input CreateUserInput) (*model.User, bool, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, false, model.NewValidationError(fields)
	}

	existing, err := s.userRepo.FindByOAuthProvider(ctx, input.Provider, input.ProviderID)
	if err != nil {
		return nil, false, model.NewPersistenceError(err)
	}
	if existing != nil {
		return existing, false, nil
	}

	now := time.Now()
	newUser := &model.User{
		Email: input.Email,
		OAuthProviders: []model.OAuthProviderRef{
			{Provider: input.Provider, ProviderID: input.ProviderID},
		},
		Profile: model.Profile{
			Name:      input.Name,
			Bio:       input.Bio,
			AvatarURL: input.AvatarURL,
		},
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			existing, lookupErr := s.userRepo.FindByOAuthProvider(ctx, input.Provider, input.ProviderID)
			if lookupErr != nil {
				return nil, false, model.NewPersistenceError(lookupErr)
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, model.NewPersistenceError(err)
	}
	return created, true, nil
}

// List は全ユーザーを返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	return users, nil
}

// GetByID はIDでユーザーを取得する。存在しない場合はNotFoundエラーを返す。
func (s *Service) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if u == nil {
		return nil, model.NewNotFoundError("User")
	}
	return u, nil
}

// Update はユーザーを部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	if fields := s.validator.Struct(input); fields != nil {
		return nil, model.NewValidationError(fields)
	}

	params := repository.UpdateUserParams{
		Email:     input.Email,
		Name:      input.Name,
		Bio:       input.Bio,
		AvatarURL: input.AvatarURL,
	}

	u, err := s.userRepo.Update(ctx, id, params)
	if err != nil {
		return nil, model.NewPersistenceError(err)
	}
	if u == nil {
		return nil, model.NewNotFoundError("User")
	}
	return u, nil
}

// Delete はユーザーと、そのユーザーのセッションをすべて削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return model.NewPersistenceError(err)
	}
	if u == nil {
		return model.NewNotFoundError("User")
	}
	if err := s.sessionRepo.DeleteByUserID(ctx, u.ID.Hex()); err != nil {
		return model.NewPersistenceError(err)
	}
	return nil
}
