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

const categoryCollection = "categories"

// MongoCategoryRepo はMongoDBを使用したカテゴリリポジトリ。
type MongoCategoryRepo struct {
	db *mongo.Database
}

// NewMongoCategoryRepo はMongoCategoryRepoを生成する。
func NewMongoCategoryRepo(db *mongo.Database) *MongoCategoryRepo {
	return &MongoCategoryRepo{db: db}
}

// FindByID は指定IDのカテゴリを取得する。見つからない場合はnilを返す。
func (r *MongoCategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	category := &model.Category{}
	err = r.db.Collection(categoryCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}

	return category, nil
}

// List は全カテゴリをストア順で返す。
func (r *MongoCategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	cursor, err := r.db.Collection(categoryCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	categories := []*model.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	return categories, nil
}

// Create はカテゴリを作成し、採番されたIDを含むレコードを返す。
func (r *MongoCategoryRepo) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	result, err := r.db.Collection(categoryCollection).InsertOne(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	category.ID = objectID

	return category, nil
}

// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
// updated_atはフィールド指定が空でも常に更新する。見つからない場合はnilを返す。
func (r *MongoCategoryRepo) Update(ctx context.Context, id string, params UpdateCategoryParams) (*model.Category, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	updateMap["updated_at"] = time.Now()

	category := &model.Category{}
	err = r.db.Collection(categoryCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// Delete は指定IDのカテゴリを削除する。見つからない場合はnilを返す。
func (r *MongoCategoryRepo) Delete(ctx context.Context, id string) (*model.Category, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	category := &model.Category{}
	err = r.db.Collection(categoryCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	return category, nil
}

// AddRecipe はレシピIDをカテゴリのrecipes集合に冪等に追加する。
// $addToSetにより重複追加は単一ドキュメント操作として吸収される。
// カテゴリが見つからない場合はfalseを返す。
func (r *MongoCategoryRepo) AddRecipe(ctx context.Context, id string, recipeID bson.ObjectID) (bool, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.db.Collection(categoryCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$addToSet": bson.M{"recipes": recipeID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to add recipe to category: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// compile-time interface check
var _ CategoryRepository = (*MongoCategoryRepo)(nil)
