package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/hitoshi/cookbook/internal/model"
)

const sessionCollection = "sessions"

// MongoSessionRepo はMongoDBを使用したセッションリポジトリ。
// 期限切れドキュメントはexpires_atのTTLインデックスで自動削除されるが、
// TTLモニタの遅延に備えてFindByIDでも期限を検証する。
type MongoSessionRepo struct {
	db *mongo.Database
}

// NewMongoSessionRepo はMongoSessionRepoを生成する。
func NewMongoSessionRepo(db *mongo.Database) *MongoSessionRepo {
	return &MongoSessionRepo{db: db}
}

// Create はセッションを作成する。
func (r *MongoSessionRepo) Create(ctx context.Context, session *model.Session) error {
	_, err := r.db.Collection(sessionCollection).InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
func (r *MongoSessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	session := &model.Session{}
	err := r.db.Collection(sessionCollection).FindOne(ctx, bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return session, nil
}

// DeleteByID は指定IDのセッションを削除する。
func (r *MongoSessionRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.Collection(sessionCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteByUserID は指定ユーザーの全セッションを削除する。
// 管理者によるロール変更後のセッション無効化に使用する。
func (r *MongoSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.db.Collection(sessionCollection).DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SessionRepository = (*MongoSessionRepo)(nil)
