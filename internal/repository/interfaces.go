// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/hitoshi/cookbook/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByOAuthProvider は(provider, providerId)の組でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByOAuthProvider(ctx context.Context, provider, providerID string) (*model.User, error)

	// List は全ユーザーをストア順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// Create はユーザーを作成し、採番されたIDを含むレコードを返す。
	// (provider, providerId)のユニーク制約違反はIsDuplicateKeyで判別できる。
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
	// updated_atは常に更新する。見つからない場合はnilを返す。
	Update(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)

	// Delete は指定IDのユーザーを削除する。見つからない場合はnilを返す。
	Delete(ctx context.Context, id string) (*model.User, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
type SessionRepository interface {
	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.Session) error
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)
	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error
	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}

// RecipeRepository はレシピデータの永続化インターフェース。
type RecipeRepository interface {
	// FindByID は指定IDのレシピを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Recipe, error)
	// List は全レシピをストア順で返す。
	List(ctx context.Context) ([]*model.Recipe, error)
	// Create はレシピを作成し、採番されたIDを含むレコードを返す。
	Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
	// updated_atは常に更新する。見つからない場合はnilを返す。
	Update(ctx context.Context, id string, params UpdateRecipeParams) (*model.Recipe, error)
	// Delete は指定IDのレシピを削除する。見つからない場合はnilを返す。
	Delete(ctx context.Context, id string) (*model.Recipe, error)
}

// CategoryRepository はカテゴリデータの永続化インターフェース。
type CategoryRepository interface {
	// FindByID は指定IDのカテゴリを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Category, error)
	// List は全カテゴリをストア順で返す。
	List(ctx context.Context) ([]*model.Category, error)
	// Create はカテゴリを作成し、採番されたIDを含むレコードを返す。
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
	// updated_atは常に更新する。見つからない場合はnilを返す。
	Update(ctx context.Context, id string, params UpdateCategoryParams) (*model.Category, error)
	// Delete は指定IDのカテゴリを削除する。見つからない場合はnilを返す。
	Delete(ctx context.Context, id string) (*model.Category, error)
	// AddRecipe はレシピIDをカテゴリのrecipes集合に冪等に追加する。
	// すでに含まれている場合も成功として扱う。カテゴリが見つからない場合はfalseを返す。
	AddRecipe(ctx context.Context, id string, recipeID bson.ObjectID) (bool, error)
}

// ReviewRepository はレビューデータの永続化インターフェース。
type ReviewRepository interface {
	// FindByID は指定IDのレビューを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Review, error)
	// List は全レビューをストア順で返す。
	List(ctx context.Context) ([]*model.Review, error)
	// Create はレビューを作成し、採番されたIDを含むレコードを返す。
	Create(ctx context.Context, review *model.Review) (*model.Review, error)
	// Update は指定フィールドのみを部分更新する。nilフィールドは変更しない。
	// updated_atは常に更新する。見つからない場合はnilを返す。
	Update(ctx context.Context, id string, params UpdateReviewParams) (*model.Review, error)
	// Delete は指定IDのレビューを削除する。見つからない場合はnilを返す。
	Delete(ctx context.Context, id string) (*model.Review, error)
	// PushComment はコメントをレビューのcommentsに追加する。
	// レビューが見つからない場合はfalseを返す。
	PushComment(ctx context.Context, id string, comment model.ReviewComment) (bool, error)
}

// UpdateUserParams はユーザーの部分更新パラメータ。
// nilでないフィールドのみ更新される。省略と空値はポインタの有無で区別する。
type UpdateUserParams struct {
	Email     *string
	Name      *string
	Bio       *string
	AvatarURL *string
}

// UpdateRecipeParams はレシピの部分更新パラメータ。
type UpdateRecipeParams struct {
	Title        *string
	Description  *string
	Ingredients  *[]string
	Instructions *[]string
	CategoryID   *bson.ObjectID
	PublisherID  *bson.ObjectID
	Image        *string
}

// UpdateCategoryParams はカテゴリの部分更新パラメータ。
type UpdateCategoryParams struct {
	Name        *string
	Description *string
}

// UpdateReviewParams はレビューの部分更新パラメータ。
type UpdateReviewParams struct {
	Rating  *int
	Comment *string
}

// IsDuplicateKey はストアのユニーク制約違反エラーかどうかを判別する。
// リコンサイラのcheck-then-insert競合の検出に使用する。
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
