package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Category はレシピのカテゴリを表す。
// Recipesは集合として扱う（同一IDの重複追加は冪等）。
type Category struct {
	ID          bson.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string          `bson:"name" json:"name"`
	Description string          `bson:"description" json:"description"`
	Recipes     []bson.ObjectID `bson:"recipes" json:"recipes"`
	CreatedAt   time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updatedAt"`
}
