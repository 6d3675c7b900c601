package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/cookbook/internal/middleware"
	"github.com/hitoshi/cookbook/internal/model"
)

// messageResponse は操作結果のみを伝えるレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON はリクエストボディをdstへデコードする。
// 解析に失敗した場合は400を書き込み、falseを返す。
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.WriteAPIError(w, model.NewValidationError([]model.FieldError{
			{Field: "body", Message: "Invalid JSON body"},
		}))
		return false
	}
	return true
}

// handleServiceError はサービス層のエラーをHTTPレスポンスへ変換する。
// APIError以外のエラーは詳細をログに残し、一般的な500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == model.ErrCodePersistence {
			slog.Error("persistence error", slog.String("error", apiErr.Message))
		}
		middleware.WriteAPIError(w, apiErr)
		return
	}

	slog.Error("unexpected handler error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
