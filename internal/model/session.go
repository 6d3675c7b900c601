package model

import "time"

// Session はユーザーのログインセッションを表す。
// IDはサーバー発行のトークンで、クライアントにはCookieで渡る。
// ペイロードはユーザーIDとロール、表示名のスナップショットに限定し、
// プロフィール編集の反映が必要な場面では都度ユーザーを再取得する。
type Session struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Role      string    `bson:"role"`
	Name      string    `bson:"name"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}
