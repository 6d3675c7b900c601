package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/cookbook/internal/model"
)

// errorBody は単一メッセージのエラーレスポンス。
type errorBody struct {
	Error string `json:"error"`
}

// fieldErrorsBody はバリデーションエラーのレスポンス。
// 失敗フィールド1件につき1エントリを持つ。
type fieldErrorsBody struct {
	Errors []model.FieldError `json:"errors"`
}

// statusFor はエラーコードをHTTPステータスへ変換する。
func statusFor(code string) int {
	switch code {
	case model.ErrCodeValidation:
		return http.StatusBadRequest
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteAPIError はAPIErrorを統一フォーマットでレスポンスに書き込む。
// バリデーションエラーはフィールドごとのメッセージリスト、
// それ以外は単一のerrorメッセージになる。
func WriteAPIError(w http.ResponseWriter, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(apiErr.Code))

	if apiErr.Code == model.ErrCodeValidation {
		json.NewEncoder(w).Encode(fieldErrorsBody{Errors: apiErr.Fields})
		return
	}
	json.NewEncoder(w).Encode(errorBody{Error: apiErr.Message})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(errorBody{Error: "internal server error"})
}
