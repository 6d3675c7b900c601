// Package model はドメインモデルを定義する。
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ロールの定義。roleフィールドはこの2値のみを取る。
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// OAuthProviderRef は外部IdPとの紐付け情報を表す。
// (provider, providerId)の組は全ユーザーを通して高々1ユーザーに対応する。
type OAuthProviderRef struct {
	Provider   string `bson:"provider" json:"provider"`
	ProviderID string `bson:"provider_id" json:"providerId"`
}

// Profile はユーザーの公開プロフィール。全フィールドは空文字をデフォルトとする。
type Profile struct {
	Name      string `bson:"name" json:"name"`
	Bio       string `bson:"bio" json:"bio"`
	AvatarURL string `bson:"avatar_url" json:"avatarUrl"`
}

// User はサービス利用ユーザーを表す。
// 複数のIdP（GitHub, Google等）を1ユーザーに紐付けられる構造。
type User struct {
	ID             bson.ObjectID      `bson:"_id,omitempty" json:"_id"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	OAuthProviders []OAuthProviderRef `bson:"oauth_providers" json:"oauthProviders"`
	Profile        Profile            `bson:"profile" json:"profile"`
	Role           string             `bson:"role" json:"role"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// IsAdmin はユーザーが管理者ロールかどうかを返す。
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
