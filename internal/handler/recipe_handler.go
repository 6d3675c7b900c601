package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/recipe"
)

// RecipeServiceInterface はレシピハンドラーが必要とするサービスインターフェース。
type RecipeServiceInterface interface {
	Create(ctx context.Context, input recipe.CreateRecipeInput) (*model.Recipe, error)
	List(ctx context.Context) ([]*model.Recipe, error)
	GetByID(ctx context.Context, id string) (*model.Recipe, error)
	Update(ctx context.Context, id string, input recipe.UpdateRecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// DocumentMetrics はドキュメント作成の記録に必要なインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type DocumentMetrics interface {
	RecordDocumentCreated(resource string)
}

// RecipeHandler はレシピ管理のHTTPハンドラー。
type RecipeHandler struct {
	service RecipeServiceInterface
	metrics DocumentMetrics
}

// NewRecipeHandler はRecipeHandlerを生成する。metricsはnil可。
func NewRecipeHandler(service RecipeServiceInterface, metrics DocumentMetrics) *RecipeHandler {
	return &RecipeHandler{
		service: service,
		metrics: metrics,
	}
}

// Create はレシピを作成する。
// POST /recipes
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input recipe.CreateRecipeInput
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentCreated("recipe")
	}
	writeJSON(w, http.StatusCreated, created)
}

// List は全レシピを返す。
// GET /recipes
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if recipes == nil {
		recipes = []*model.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Get はIDでレシピを返す。
// GET /recipes/{id}
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Update はレシピを部分更新する。
// PUT /recipes/{id}
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input recipe.UpdateRecipeInput
	if !decodeJSON(w, r, &input) {
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete はレシピを削除する。
// DELETE /recipes/{id}
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Recipe deleted successfully"})
}
