// Package database はMongoDB接続とインデックス管理を提供する。
package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Connect はMongoDBへの接続を確立し、指定データベースのハンドルを返す。
// uriはMongoDBの接続URLを指定する（例: "mongodb://localhost:27017"）。
// 実際の到達確認にはPingを使用すること。
func Connect(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return client, nil
}

// Ping はサーバーへの到達性を確認する。
func Ping(ctx context.Context, client *mongo.Client) error {
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return nil
}

// EnsureIndexes はアプリケーションが前提とするインデックスを作成する。
// 既存の同一定義はno-opになるため、起動ごとに呼んで問題ない。
//
//   - users: (oauth_providers.provider, oauth_providers.provider_id) の
//     複合ユニークインデックス。リコンサイラのcheck-then-insert競合を
//     ストア層で閉じるための制約。
//   - users: email の部分ユニークインデックス。emailは省略可能なため、
//     文字列が存在するドキュメントにのみ一意性を課す。
//   - sessions: expires_at のTTLインデックス。期限切れセッションを自動削除する。
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "oauth_providers.provider", Value: 1},
				{Key: "oauth_providers.provider_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
	if _, err := db.Collection("sessions").Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	return nil
}
