package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/hitoshi/cookbook/internal/model"
)

const userCollection = "users"

// MongoUserRepo はMongoDBを使用したユーザーリポジトリ。
type MongoUserRepo struct {
	db *mongo.Database
}

// NewMongoUserRepo はMongoUserRepoを生成する。
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
// 不正な形式のIDも未検出として扱う。
func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	user := &model.User{}
	err = r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return user, nil
}

// FindByOAuthProvider は(provider, providerId)の組でユーザーを検索する。
// 見つからない場合はnilを返す。
func (r *MongoUserRepo) FindByOAuthProvider(ctx context.Context, provider, providerID string) (*model.User, error) {
	filter := bson.M{
		"oauth_providers": bson.M{
			"$elemMatch": bson.M{
				"provider":    provider,
				"provider_id": providerID,
			},
		},
	}

	user := &model.User{}
	err := r.db.Collection(userCollection).FindOne(ctx, filter).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by oauth provider: %w", err)
	}

	return user, nil
}

// List は全ユーザーをストア順で返す。
func (r *MongoUserRepo) List(ctx context.Context) ([]*model.User, error) {
	cursor, err := r.db.Collection(userCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*model.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// Create はユーザーを作成し、採番されたIDを含むレコードを返す。
// ユニーク制約違反はラップせずに返し、呼び出し側がIsDuplicateKeyで判別する。
func (r *MongoUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	user.ID = objectID

	return user, nil
}

// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
// updated_atはフィールド指定が空でも常に更新する。見つからない場合はnilを返す。
func (r *MongoUserRepo) Update(ctx context.Context, id string, params UpdateUserParams) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	updateMap := bson.M{}
	if params.Email != nil {
		updateMap["email"] = *params.Email
	}
	if params.Name != nil {
		updateMap["profile.name"] = *params.Name
	}
	if params.Bio != nil {
		updateMap["profile.bio"] = *params.Bio
	}
	if params.AvatarURL != nil {
		updateMap["profile.avatar_url"] = *params.AvatarURL
	}
	updateMap["updated_at"] = time.Now()

	user := &model.User{}
	err = r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete は指定IDのユーザーを削除する。見つからない場合はnilを返す。
func (r *MongoUserRepo) Delete(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	user := &model.User{}
	err = r.db.Collection(userCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	return user, nil
}

// compile-time interface check
var _ UserRepository = (*MongoUserRepo)(nil)
