// Package validation はリクエスト入力のバリデーションを提供する。
// go-playground/validatorをラップし、失敗フィールドごとに1メッセージの
// エラーリストへ変換する。バリデーションはストアアクセス前に完結する。
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hitoshi/cookbook/internal/model"
)

// Validator は入力構造体のバリデータ。
type Validator struct {
	validate *validator.Validate
}

// New はカスタムルールを登録済みのValidatorを生成する。
//
// 追加ルール:
//   - objectid: ストア識別子（ObjectIDのhex表現）として構文的に妥当な文字列
//   - rating:   1〜5の整数
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// エラーメッセージにはGoのフィールド名ではなくjsonタグ名を使う
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// バリデーションルールの登録失敗はプログラミングエラーなのでpanicさせる
	if err := v.RegisterValidation("objectid", isObjectID); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("rating", isRating); err != nil {
		panic(err)
	}

	return &Validator{validate: v}
}

// Struct は構造体を検証し、失敗フィールドのリストを返す。
// すべて妥当な場合はnilを返す。
func (v *Validator) Struct(s any) []model.FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, model.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return fields
}

// isObjectID はObjectIDのhex表現として妥当かを検証する。
func isObjectID(fl validator.FieldLevel) bool {
	_, err := bson.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

// isRating は1〜5の整数かを検証する。
func isRating(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 1 && n <= 5
}

// messageFor はバリデーションタグから利用者向けメッセージを組み立てる。
// 文言はAPIの互換性維持のため既存クライアントが期待する形に合わせている。
func messageFor(fe validator.FieldError) string {
	name := fe.Field()

	switch fe.Tag() {
	case "required":
		if isListKind(fe.Kind()) {
			return fmt.Sprintf("%s must be a non-empty list", capitalize(name))
		}
		return fmt.Sprintf("%s is required", capitalize(name))
	case "min":
		if isListKind(fe.Kind()) {
			return fmt.Sprintf("%s must be a non-empty list", capitalize(name))
		}
		return fmt.Sprintf("%s must not be empty", capitalize(name))
	case "email":
		return "A valid email is required"
	case "objectid":
		return fmt.Sprintf("Valid %s is required", name)
	case "rating":
		return "Rating must be between 1 and 5"
	default:
		return fmt.Sprintf("%s is invalid", capitalize(name))
	}
}

// isListKind はリスト系フィールドかどうかを返す。
func isListKind(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array
}

// capitalize は先頭1文字を大文字にする。jsonタグ名を文頭に置くために使う。
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
