package model

import "fmt"

// エラーコード。ハンドラー層でHTTPステータスへ変換する。
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodePersistence  = "PERSISTENCE_ERROR"
)

// FieldError はバリデーション失敗フィールド1件分のメッセージを表す。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError はAPIの統一エラーを表す。
// ValidationErrorの場合のみFieldsが埋まり、1失敗フィールドにつき1メッセージを持つ。
type APIError struct {
	Code    string
	Message string
	Fields  []FieldError
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewValidationError はバリデーションエラーを生成する。
// ストアアクセス前に検出され、部分書き込みは発生しない。
func NewValidationError(fields []FieldError) *APIError {
	return &APIError{
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// NewNotFoundError はリソース未検出エラーを生成する。
// resourceには"Recipe"等の表示名を渡す。
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewUnauthorizedError は認証・認可エラーを生成する。
func NewUnauthorizedError(message string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
	}
}

// NewPersistenceError はストア操作の失敗を表すエラーを生成する。
// 元のエラーメッセージをそのまま保持する（リトライは行わない）。
func NewPersistenceError(err error) *APIError {
	message := "Database action error"
	if err != nil {
		message = err.Error()
	}
	return &APIError{
		Code:    ErrCodePersistence,
		Message: message,
	}
}
