package category

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

type mockCategoryRepo struct {
	findByIDFn  func(ctx context.Context, id string) (*model.Category, error)
	listFn      func(ctx context.Context) ([]*model.Category, error)
	createFn    func(ctx context.Context, category *model.Category) (*model.Category, error)
	updateFn    func(ctx context.Context, id string, params repository.UpdateCategoryParams) (*model.Category, error)
	deleteFn    func(ctx context.Context, id string) (*model.Category, error)
	addRecipeFn func(ctx context.Context, id string, recipeID bson.ObjectID) (bool, error)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCategoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	return m.listFn(ctx)
}
func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	return m.createFn(ctx, category)
}
func (m *mockCategoryRepo) Update(ctx context.Context, id string, params repository.UpdateCategoryParams) (*model.Category, error) {
	return m.updateFn(ctx, id, params)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, id string) (*model.Category, error) {
	return m.deleteFn(ctx, id)
}
func (m *mockCategoryRepo) AddRecipe(ctx context.Context, id string, recipeID bson.ObjectID) (bool, error) {
	return m.addRecipeFn(ctx, id, recipeID)
}

type mockRecipeRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Recipe, error)
}

func (m *mockRecipeRepo) FindByID(ctx context.Context, id string) (*model.Recipe, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockRecipeRepo) List(ctx context.Context) ([]*model.Recipe, error) {
	return nil, nil
}
func (m *mockRecipeRepo) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	return nil, nil
}
func (m *mockRecipeRepo) Update(ctx context.Context, id string, params repository.UpdateRecipeParams) (*model.Recipe, error) {
	return nil, nil
}
func (m *mockRecipeRepo) Delete(ctx context.Context, id string) (*model.Recipe, error) {
	return nil, nil
}

// --- テスト ---

// TestService_Create はカテゴリ作成を検証する。
func TestService_Create(t *testing.T) {
	repo := &mockCategoryRepo{
		createFn: func(ctx context.Context, category *model.Category) (*model.Category, error) {
			if category.Name != "Desserts" {
				t.Errorf("Name = %q, want %q", category.Name, "Desserts")
			}
			if category.Recipes == nil {
				t.Error("expected empty recipes list, got nil")
			}
			created := *category
			created.ID = bson.NewObjectID()
			return &created, nil
		},
	}

	svc := NewService(repo, &mockRecipeRepo{}, validation.New())

	category, err := svc.Create(context.Background(), CreateCategoryInput{
		Name:        "Desserts",
		Description: "Sweet dishes",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if category.ID.IsZero() {
		t.Error("expected assigned ID")
	}
}

// TestService_Create_MissingName は名前欠落時のバリデーションエラーを検証する。
func TestService_Create_MissingName(t *testing.T) {
	svc := NewService(&mockCategoryRepo{}, &mockRecipeRepo{}, validation.New())

	_, err := svc.Create(context.Background(), CreateCategoryInput{Description: "no name"})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
	if len(apiErr.Fields) != 1 || apiErr.Fields[0].Message != "Name is required" {
		t.Errorf("Fields = %+v", apiErr.Fields)
	}
}

// TestService_AddRecipe はカテゴリへのレシピ追加を検証する。
func TestService_AddRecipe(t *testing.T) {
	recipeID := bson.NewObjectID()
	categoryID := bson.NewObjectID().Hex()

	categoryRepo := &mockCategoryRepo{
		addRecipeFn: func(ctx context.Context, id string, rid bson.ObjectID) (bool, error) {
			if id != categoryID {
				t.Errorf("category id = %q, want %q", id, categoryID)
			}
			if rid != recipeID {
				t.Errorf("recipe id = %s, want %s", rid.Hex(), recipeID.Hex())
			}
			return true, nil
		},
	}
	recipeRepo := &mockRecipeRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Recipe, error) {
			return &model.Recipe{ID: recipeID}, nil
		},
	}

	svc := NewService(categoryRepo, recipeRepo, validation.New())

	err := svc.AddRecipe(context.Background(), categoryID, AddRecipeInput{RecipeID: recipeID.Hex()})
	if err != nil {
		t.Fatalf("AddRecipe returned error: %v", err)
	}
}

// TestService_AddRecipe_InvalidRecipeID は不正なレシピIDが拒否されることを検証する。
func TestService_AddRecipe_InvalidRecipeID(t *testing.T) {
	svc := NewService(&mockCategoryRepo{}, &mockRecipeRepo{}, validation.New())

	err := svc.AddRecipe(context.Background(), bson.NewObjectID().Hex(), AddRecipeInput{RecipeID: "abc"})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
	if len(apiErr.Fields) != 1 || apiErr.Fields[0].Message != "Valid recipeId is required" {
		t.Errorf("Fields = %+v", apiErr.Fields)
	}
}

// TestService_AddRecipe_RecipeMissing は未登録レシピの追加がNotFoundになることを検証する。
func TestService_AddRecipe_RecipeMissing(t *testing.T) {
	recipeRepo := &mockRecipeRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Recipe, error) {
			return nil, nil
		},
	}
	categoryRepo := &mockCategoryRepo{
		addRecipeFn: func(ctx context.Context, id string, rid bson.ObjectID) (bool, error) {
			t.Fatal("AddRecipe should not reach the category repository")
			return false, nil
		},
	}

	svc := NewService(categoryRepo, recipeRepo, validation.New())

	err := svc.AddRecipe(context.Background(), bson.NewObjectID().Hex(), AddRecipeInput{RecipeID: bson.NewObjectID().Hex()})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Recipe not found" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Recipe not found")
	}
}

// TestService_AddRecipe_CategoryMissing は未登録カテゴリへの追加がNotFoundになることを検証する。
func TestService_AddRecipe_CategoryMissing(t *testing.T) {
	recipeRepo := &mockRecipeRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.Recipe, error) {
			return &model.Recipe{ID: bson.NewObjectID()}, nil
		},
	}
	categoryRepo := &mockCategoryRepo{
		addRecipeFn: func(ctx context.Context, id string, rid bson.ObjectID) (bool, error) {
			return false, nil
		},
	}

	svc := NewService(categoryRepo, recipeRepo, validation.New())

	err := svc.AddRecipe(context.Background(), bson.NewObjectID().Hex(), AddRecipeInput{RecipeID: bson.NewObjectID().Hex()})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Category not found" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Category not found")
	}
}

// TestService_Update_PartialFields は指定フィールドのみが更新対象になることを検証する。
func TestService_Update_PartialFields(t *testing.T) {
	desc := "Updated description"

	repo := &mockCategoryRepo{
		updateFn: func(ctx context.Context, id string, params repository.UpdateCategoryParams) (*model.Category, error) {
			if params.Name != nil {
				t.Error("expected Name param to stay nil")
			}
			if params.Description == nil || *params.Description != desc {
				t.Errorf("Description param = %v, want %q", params.Description, desc)
			}
			return &model.Category{Description: desc}, nil
		},
	}

	svc := NewService(repo, &mockRecipeRepo{}, validation.New())

	category, err := svc.Update(context.Background(), bson.NewObjectID().Hex(), UpdateCategoryInput{Description: &desc})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if category.Description != desc {
		t.Errorf("Description = %q, want %q", category.Description, desc)
	}
}
