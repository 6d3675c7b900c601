package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/cookbook/internal/model"
	"github.com/hitoshi/cookbook/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Create(ctx context.Context, input user.CreateUserInput) (*model.User, bool, error)
	List(ctx context.Context) ([]*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, input user.UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
	metrics DocumentMetrics
}

// NewUserHandler はUserHandlerを生成する。metricsはnil可。
func NewUserHandler(service UserServiceInterface, metrics DocumentMetrics) *UserHandler {
	return &UserHandler{
		service: service,
		metrics: metrics,
	}
}

// Create はユーザーを作成する。
// 同一の(provider, providerId)が登録済みの場合は作成せず200を返す。
// POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input user.CreateUserInput
	if !decodeJSON(w, r, &input) {
		return
	}

	created, isNew, err := h.service.Create(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if !isNew {
		writeJSON(w, http.StatusOK, messageResponse{Message: "User already exists"})
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDocumentCreated("user")
	}
	writeJSON(w, http.StatusCreated, created)
}

// List は全ユーザーを返す。
// GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Get はIDでユーザーを返す。
// GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Update はユーザーを部分更新する。
// PUT /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input user.UpdateUserInput
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

// Delete はユーザーを削除する。そのユーザーのセッションも破棄される。
// DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
