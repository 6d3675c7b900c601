package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/cookbook/internal/category"
	"github.com/hitoshi/cookbook/internal/model"
)

// CategoryServiceInterface はカテゴリハンドラーが必要とするサービスインターフェース。
type CategoryServiceInterface interface {
	Create(ctx context.Context, input category.CreateCategoryInput) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Update(ctx context.Context, id string, input category.UpdateCategoryInput) (*model.Category, error)
	Delete(ctx context.Context, id string) error
	AddRecipe(ctx context.Context, id string, input category.AddRecipeInput) error
}

// CategoryHandler はカテゴリ管理のHTTPハンドラー。
type CategoryHandler struct {
	service CategoryServiceInterface
	metrics DocumentMetrics
}

// NewCategoryHandler はCategoryHandlerを生成する。metricsはnil可。
func NewCategoryHandler(service CategoryServiceInterface, metrics DocumentMetrics) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		metrics: metrics,
	}
}

// Create はカテゴリを作成する。
// POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input category.CreateCategoryInput
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentCreated("category")
	}
	writeJSON(w, http.StatusCreated, created)
}

// List は全カテゴリを返す。
// GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []*model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Get はIDでカテゴリを返す。
// GET /categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// categoryPutRequest はPUT /categories/{id}のボディ。
// recipeIdが指定された場合はレシピの関連付け、
// それ以外はカテゴリ本体の部分更新として扱う。
type categoryPutRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	RecipeID    *string `json:"recipeId"`
}

// Put はカテゴリの更新またはレシピの関連付けを行う。
// PUT /categories/{id}
func (h *CategoryHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req categoryPutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")

	if req.RecipeID != nil {
		if err := h.service.AddRecipe(r.Context(), id, category.AddRecipeInput{RecipeID: *req.RecipeID}); err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Recipe added to category successfully"})
		return
	}

	updated, err := h.service.Update(r.Context(), id, category.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete はカテゴリを削除する。
// DELETE /categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}

