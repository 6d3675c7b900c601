package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ReviewComment はレビューに対するスレッドコメントを表す。
type ReviewComment struct {
	UserID    bson.ObjectID `bson:"user_id" json:"userId"`
	Comment   string        `bson:"comment" json:"comment"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}

// Review はレシピへのレビューを表す。Ratingは1〜5の整数。
type Review struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	RecipeID  bson.ObjectID   `bson:"recipe_id" json:"recipeId"`
	UserID    bson.ObjectID   `bson:"user_id" json:"userId"`
	Rating    int             `bson:"rating" json:"rating"`
	Comment   string          `bson:"comment,omitempty" json:"comment,omitempty"`
	Comments  []ReviewComment `bson:"comments" json:"comments"`
	CreatedAt time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updatedAt"`
}
