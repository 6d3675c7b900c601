// Package auth はOAuth認証フロー、アイデンティティ照合、セッション管理を提供する。
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/repository"
)

// OAuthUserInfo はOAuthプロバイダーから取得したアイデンティティ・アサーションを表す。
// ProviderUserID以外のフィールドはプロバイダーにより欠落しうるため、
// 欠落は空文字に正規化する（エラーにはしない）。
type OAuthUserInfo struct {
	Provider       string // "github", "google" 等
	ProviderUserID string
	Email          string
	Name           string
	Bio            string
	AvatarURL      string
}

// OAuthProvider はOAuth認証プロバイダーのインターフェース。
// GitHub/Googleの2実装を同一フローで扱うための抽象化。
type OAuthProvider interface {
	// Name はプロバイダー名（"github"等）を返す。
	Name() string
	// GetLoginURL はOAuth認証URLを生成する。
	GetLoginURL(state string) string
	// ExchangeCode は認可コードをトークンに交換し、ユーザー情報を取得する。
	ExchangeCode(ctx context.Context, code string) (*OAuthUserInfo, error)
}

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	providers   map[string]OAuthProvider
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	config      ServiceConfig
}

// NewService はServiceを生成する。
func NewService(
	providers []OAuthProvider,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	config ServiceConfig,
) *Service {
	m := make(map[string]OAuthProvider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Service{
		providers:   m,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		config:      config,
	}
}

// GetLoginURL は指定プロバイダーのOAuth認証URLを生成する。
func (s *Service) GetLoginURL(providerName, state string) (string, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return "", fmt.Errorf("unknown oauth provider: %s", providerName)
	}
	return provider.GetLoginURL(state), nil
}

// HandleCallback はOAuthコールバックを処理し、セッションを発行する。
// アサーションをアイデンティティ照合（Reconcile）にかけ、対応するユーザーで
// セッションを作成する。新規アカウントが作成された場合はisNew=trueを返す。
func (s *Service) HandleCallback(ctx context.Context, providerName, code string) (*model.Session, bool, error) {
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, false, fmt.Errorf("unknown oauth provider: %s", providerName)
	}

	userInfo, err := provider.ExchangeCode(ctx, code)
	if err != nil {
		return nil, false, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	user, isNew, err := s.Reconcile(ctx, userInfo)
	if err != nil {
		return nil, false, err
	}

	session, err := s.createSession(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create session: %w", err)
	}

	return session, isNew, nil
}

// Reconcile はアサーションを内部ユーザーレコードに対応付ける。
//
//  1. (provider, providerId)の完全一致で既存ユーザーを検索する。
//  2. 見つかった場合はそのまま返す。再ログインは保存済みレコードに対して
//     冪等であり、アサーションの新しいプロフィールで上書きしない。
//  3. 見つからない場合は新規ユーザーを作成する。同一アイデンティティの
//     同時コールバックはストアのユニーク制約違反として現れるため、
//     その場合は再検索して既存レコードを返す（二重アカウントは発生しない）。
func (s *Service) Reconcile(ctx context.Context, info *OAuthUserInfo) (*model.User, bool, error) {
	existing, err := s.userRepo.FindByOAuthProvider(ctx, info.Provider, info.ProviderUserID)
	if err != nil {
		return nil, false, model.NewPersistenceError(err)
	}
	if existing != nil {
		slog.Info("existing user logged in",
			slog.String("user_id", existing.ID.Hex()),
			slog.String("provider", info.Provider),
		)
		return existing, false, nil
	}

	now := time.Now()
	newUser := &model.User{
		Email: info.Email,
		OAuthProviders: []model.OAuthProviderRef{
			{Provider: info.Provider, ProviderID: info.ProviderUserID},
		},
		Profile: model.Profile{
			Name:      info.Name,
			Bio:       info.Bio,
			AvatarURL: info.AvatarURL,
		},
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			// 同時コールバックとの競合。先勝ちのレコードを取得して返す。
			existing, findErr := s.userRepo.FindByOAuthProvider(ctx, info.Provider, info.ProviderUserID)
			if findErr != nil {
				return nil, false, model.NewPersistenceError(findErr)
			}
			if existing != nil {
				slog.Info("concurrent signup resolved to existing user",
					slog.String("user_id", existing.ID.Hex()),
					slog.String("provider", info.Provider),
				)
				return existing, false, nil
			}
		}
		return nil, false, model.NewPersistenceError(err)
	}

	slog.Info("new user created",
		slog.String("user_id", created.ID.Hex()),
		slog.String("provider", info.Provider),
	)
	return created, true, nil
}

// Logout はセッションを破棄する。
// ストア側の削除失敗は呼び出し側で警告に留める想定（ログアウト自体は常に成功させる）。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.Info("user logged out", slog.String("session_id", sessionID))
	return nil
}

// GetCurrentUser はセッションから現在のユーザーを取得する。
// セッションにはIDとロールのスナップショットしか持たないため、
// 最新のプロフィールはアイデンティティストアから再取得する。
func (s *Service) GetCurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	return user, nil
}

// createSession はセッションを作成し永続化する。
func (s *Service) createSession(ctx context.Context, user *model.User) (*model.Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    user.ID.Hex(),
		Role:      user.Role,
		Name:      user.Profile.Name,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
