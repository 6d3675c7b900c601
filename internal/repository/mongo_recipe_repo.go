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

const recipeCollection = "recipes"

// MongoRecipeRepo はMongoDBを使用したレシピリポジトリ。
type MongoRecipeRepo struct {
	db *mongo.Database
}

// NewMongoRecipeRepo はMongoRecipeRepoを生成する。
func NewMongoRecipeRepo(db *mongo.Database) *MongoRecipeRepo {
	return &MongoRecipeRepo{db: db}
}

// FindByID は指定IDのレシピを取得する。見つからない場合はnilを返す。
func (r *MongoRecipeRepo) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	recipe := &model.Recipe{}
	err = r.db.Collection(recipeCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe by ID: %w", err)
	}

	return recipe, nil
}

// List は全レシピをストア順で返す。
func (r *MongoRecipeRepo) List(ctx context.Context) ([]*model.Recipe, error) {
	cursor, err := r.db.Collection(recipeCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer cursor.Close(ctx)

	recipes := []*model.Recipe{}
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	return recipes, nil
}

// Create はレシピを作成し、採番されたIDを含むレコードを返す。
func (r *MongoRecipeRepo) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	result, err := r.db.Collection(recipeCollection).InsertOne(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	recipe.ID = objectID

	return recipe, nil
}

// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
// updated_atはフィールド指定が空でも常に更新する。見つからない場合はnilを返す。
func (r *MongoRecipeRepo) Update(ctx context.Context, id string, params UpdateRecipeParams) (*model.Recipe, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	updateMap := bson.M{}
	if params.Title != nil {
		updateMap["title"] = *params.Title
	}
	if params.Description != nil {
		updateMap["description"] = *params.Description
	}
	if params.Ingredients != nil {
		updateMap["ingredients"] = *params.Ingredients
	}
	if params.Instructions != nil {
		updateMap["instructions"] = *params.Instructions
	}
	if params.CategoryID != nil {
		updateMap["category_id"] = *params.CategoryID
	}
	if params.PublisherID != nil {
		updateMap["publisher_id"] = *params.PublisherID
	}
	if params.Image != nil {
		updateMap["image"] = *params.Image
	}
	updateMap["updated_at"] = time.Now()

	recipe := &model.Recipe{}
	err = r.db.Collection(recipeCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	return recipe, nil
}

// Delete は指定IDのレシピを削除する。見つからない場合はnilを返す。
// 他コレクションからの参照は確認しない（カスケード削除なし）。
func (r *MongoRecipeRepo) Delete(ctx context.Context, id string) (*model.Recipe, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	recipe := &model.Recipe{}
	err = r.db.Collection(recipeCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(recipe)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete recipe: %w", err)
	}

	return recipe, nil
}

// compile-time interface check
var _ RecipeRepository = (*MongoRecipeRepo)(nil)
