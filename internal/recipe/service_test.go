package recipe

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/repository"
	"github.com/hitoshi/cookbook/internal/validation"
)

// --- モック ---

type mockRecipeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Recipe, error)
	listFn     func(ctx context.Context) ([]*model.Recipe, error)
	createFn   func(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	updateFn   func(ctx context.Context, id string, params repository.UpdateRecipeParams) (*model.Recipe, error)
	deleteFn   func(ctx context.Context, id string) (*model.Recipe, error)
}

func (m *mockRecipeRepo) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRecipeRepo) List(ctx context.Context) ([]*model.Recipe, error) {
	return m.listFn(ctx)
}
func (m *mockRecipeRepo) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	return m.createFn(ctx, recipe)
}
func (m *mockRecipeRepo) Update(ctx context.Context, id string, params repository.UpdateRecipeParams) (*model.Recipe, error) {
	return m.updateFn(ctx, id, params)
}
func (m *mockRecipeRepo) Delete(ctx context.Context, id string) (*model.Recipe, error) {
	return m.deleteFn(ctx, id)
}

func validCreateInput() CreateRecipeInput {
	return CreateRecipeInput{
		Title:        "Beef Curry",
		Description:  "A weeknight curry",
		Ingredients:  []string{"beef", "onion", "curry roux"},
		Instructions: []string{"Brown the beef", "Simmer 20 minutes"},
		CategoryID:   bson.NewObjectID().Hex(),
		PublisherID:  bson.NewObjectID().Hex(),
	}
}

// --- テスト ---

// TestService_Create はレシピ作成を検証する。
func TestService_Create(t *testing.T) {
	input := validCreateInput()
	repo := &mockRecipeRepo{
		createFn: func(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
			if recipe.Title != input.Title {
				t.Errorf("Title = %q, want %q", recipe.Title, input.Title)
			}
			if recipe.CategoryID.Hex() != input.CategoryID {
				t.Errorf("CategoryID = %q, want %q", recipe.CategoryID.Hex(), input.CategoryID)
			}
			if recipe.CreatedAt.IsZero() || recipe.UpdatedAt.IsZero() {
				t.Error("expected timestamps to be set")
			}
			created := *recipe
			created.ID = bson.NewObjectID()
			return &created, nil
		},
	}

	svc := NewService(repo, validation.New())

	recipe, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if recipe.ID.IsZero() {
		t.Error("expected assigned ID")
	}
}

// TestService_Create_MissingFields は必須項目欠落時のバリデーションエラーを検証する。
func TestService_Create_MissingFields(t *testing.T) {
	input := CreateRecipeInput{
		Title:      "No body",
		CategoryID: "not-a-hex-id",
	}
	repo := &mockRecipeRepo{
		createFn: func(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
			t.Fatal("Create should not reach the repository")
			return nil, nil
		},
	}

	svc := NewService(repo, validation.New())

	_, err := svc.Create(context.Background(), input)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}

	messages := map[string]string{}
	for _, f := range apiErr.Fields {
		messages[f.Field] = f.Message
	}
	if messages["description"] != "Description is required" {
		t.Errorf("description message = %q", messages["description"])
	}
	if messages["ingredients"] != "Ingredients must be a non-empty list" {
		t.Errorf("ingredients message = %q", messages["ingredients"])
	}
	if messages["categoryId"] != "Valid categoryId is required" {
		t.Errorf("categoryId message = %q", messages["categoryId"])
	}
}

// TestService_GetByID_NotFound は未登録IDの取得がNotFoundになることを検証する。
func TestService_GetByID_NotFound(t *testing.T) {
	repo := &mockRecipeRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Recipe, error) {
			return nil, nil
		},
	}

	svc := NewService(repo, validation.New())

	_, err := svc.GetByID(context.Background(), bson.NewObjectID().Hex())
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeNotFound {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeNotFound)
	}
	if apiErr.Message != "Recipe not found" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Recipe not found")
	}
}

// TestService_Update_PartialFields は指定フィールドのみが更新対象になることを検証する。
func TestService_Update_PartialFields(t *testing.T) {
	title := "Renamed Curry"
	input := UpdateRecipeInput{Title: &title}

	repo := &mockRecipeRepo{
		updateFn: func(ctx context.Context, id string, params repository.UpdateRecipeParams) (*model.Recipe, error) {
			if params.Title == nil || *params.Title != title {
				t.Errorf("Title param = %v, want %q", params.Title, title)
			}
			if params.Description != nil || params.Ingredients != nil || params.CategoryID != nil {
				t.Error("expected unspecified fields to stay nil")
			}
			return &model.Recipe{Title: title}, nil
		},
	}

	svc := NewService(repo, validation.New())

	recipe, err := svc.Update(context.Background(), bson.NewObjectID().Hex(), input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if recipe.Title != title {
		t.Errorf("Title = %q, want %q", recipe.Title, title)
	}
}

// TestService_Update_EmptyTitle は空文字列による上書きが拒否されることを検証する。
func TestService_Update_EmptyTitle(t *testing.T) {
	empty := ""
	input := UpdateRecipeInput{Title: &empty}

	repo := &mockRecipeRepo{
		updateFn: func(ctx context.Context, id string, params repository.UpdateRecipeParams) (*model.Recipe, error) {
			t.Fatal("Update should not reach the repository")
			return nil, nil
		},
	}

	svc := NewService(repo, validation.New())

	_, err := svc.Update(context.Background(), bson.NewObjectID().Hex(), input)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
}

// TestService_Delete_NotFound は未登録IDの削除がNotFoundになることを検証する。
func TestService_Delete_NotFound(t *testing.T) {
	repo := &mockRecipeRepo{
		deleteFn: func(ctx context.Context, id string) (*model.Recipe, error) {
			return nil, nil
		},
	}

	svc := NewService(repo, validation.New())

	err := svc.Delete(context.Background(), bson.NewObjectID().Hex())
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Recipe not found" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Recipe not found")
	}
}
