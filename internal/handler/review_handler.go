package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/review"
)

// ReviewServiceInterface はレビューハンドラーが必要とするサービスインターフェース。
type ReviewServiceInterface interface {
	Create(ctx context.Context, input review.CreateReviewInput) (*model.Review, error)
	List(ctx context.Context) ([]*model.Review, error)
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, id string, input review.UpdateReviewInput) (*model.Review, error)
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string, input review.AddCommentInput) (*model.Review, error)
}

// ReviewHandler はレビュー管理のHTTPハンドラー。
type ReviewHandler struct {
	service ReviewServiceInterface
	metrics DocumentMetrics
}

// NewReviewHandler はReviewHandlerを生成する。metricsはnil可。
func NewReviewHandler(service ReviewServiceInterface, metrics DocumentMetrics) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		metrics: metrics,
	}
}

// Create はレビューを作成する。
// POST /reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input review.CreateReviewInput
	if !decodeJSON(w, r, &input) {
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentCreated("review")
	}
	writeJSON(w, http.StatusCreated, created)
}

// List は全レビューを返す。
// GET /reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// Get はIDでレビューを返す。
// GET /reviews/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Update はレビューを部分更新する。
// PUT /reviews/{id}
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input review.UpdateReviewInput
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

// Delete はレビューを削除する。
// DELETE /reviews/{id}
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Review deleted successfully"})
}

// AddComment はレビューに返信コメントを追加する。
// POST /reviews/{id}/comments
func (h *ReviewHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var input review.AddCommentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	updated, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
