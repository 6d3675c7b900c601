package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Recipe は投稿されたレシピを表す。
// CategoryIDとPublisherIDは他コレクションへの参照だが、書き込み時に
// 参照整合性は検証しない。読み手側が参照切れを許容する。
type Recipe struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string        `bson:"title" json:"title"`
	Description  string        `bson:"description" json:"description"`
	Ingredients  []string      `bson:"ingredients" json:"ingredients"`
	Instructions []string      `bson:"instructions" json:"instructions"`
	CategoryID   bson.ObjectID `bson:"category_id" json:"categoryId"`
	PublisherID  bson.ObjectID `bson:"publisher_id" json:"publisherId"`
	Rating       float64       `bson:"rating" json:"rating"`
	Image        string        `bson:"image" json:"image"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}
