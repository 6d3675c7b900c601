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

const reviewCollection = "reviews"

// MongoReviewRepo はMongoDBを使用したレビューリポジトリ。
type MongoReviewRepo struct {
	db *mongo.Database
}

// NewMongoReviewRepo はMongoReviewRepoを生成する。
func NewMongoReviewRepo(db *mongo.Database) *MongoReviewRepo {
	return &MongoReviewRepo{db: db}
}

// FindByID は指定IDのレビューを取得する。見つからない場合はnilを返す。
func (r *MongoReviewRepo) FindByID(ctx context.Context, id string) (*model.Review, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	review := &model.Review{}
	err = r.db.Collection(reviewCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}

	return review, nil
}

// List は全レビューをストア順で返す。
func (r *MongoReviewRepo) List(ctx context.Context) ([]*model.Review, error) {
	cursor, err := r.db.Collection(reviewCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []*model.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// Create はレビューを作成し、採番されたIDを含むレコードを返す。
func (r *MongoReviewRepo) Create(ctx context.Context, review *model.Review) (*model.Review, error) {
	result, err := r.db.Collection(reviewCollection).InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}
	review.ID = objectID

	return review, nil
}

// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
// updated_atはフィールド指定が空でも常に更新する。見つからない場合はnilを返す。
func (r *MongoReviewRepo) Update(ctx context.Context, id string, params UpdateReviewParams) (*model.Review, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	updateMap := bson.M{}
	if params.Rating != nil {
		updateMap["rating"] = *params.Rating
	}
	if params.Comment != nil {
		updateMap["comment"] = *params.Comment
	}
	updateMap["updated_at"] = time.Now()

	review := &model.Review{}
	err = r.db.Collection(reviewCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return review, nil
}

// Delete は指定IDのレビューを削除する。見つからない場合はnilを返す。
func (r *MongoReviewRepo) Delete(ctx context.Context, id string) (*model.Review, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	review := &model.Review{}
	err = r.db.Collection(reviewCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete review: %w", err)
	}

	return review, nil
}

// PushComment はコメントをレビューのcommentsに追加する。
// 重複判定はサービス層が行い、ここでは単純に追記する。
// レビューが見つからない場合はfalseを返す。
func (r *MongoReviewRepo) PushComment(ctx context.Context, id string, comment model.ReviewComment) (bool, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.db.Collection(reviewCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return false, fmt.Errorf("failed to push comment to review: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// compile-time interface check
var _ ReviewRepository = (*MongoReviewRepo)(nil)
