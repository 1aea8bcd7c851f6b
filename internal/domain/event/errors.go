package event

import (
	"errors"
	"strings"
)

// Event ドメインのエラー定義
var (
	ErrEventNotFound = errors.New("イベントが見つかりません")
	// ErrStoreUnavailable はストアゲートウェイが返す唯一の失敗。原因の詳細は含まない
	ErrStoreUnavailable = errors.New("ストアを利用できません")
	// ErrServiceUnavailable はサービス層が呼び出し元に返す失敗
	ErrServiceUnavailable = errors.New("サービスを一時的に利用できません")
)

// Reason はフィールド違反の理由
type Reason string

const (
	ReasonMissing       Reason = "missing"
	ReasonWrongType     Reason = "wrong_type"
	ReasonNegative      Reason = "negative"
	ReasonInvalidFormat Reason = "invalid_format"
	ReasonEmpty         Reason = "empty"
)

// Violation は1フィールド分の検証違反
type Violation struct {
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
}

func (v Violation) String() string {
	return v.Field + ": " + string(v.Reason)
}

// ValidationError は検証違反の一覧を保持するエラー
type ValidationError struct {
	Violations []Violation
}

// NewValidationError は ValidationError を作成する
func NewValidationError(violations []Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "バリデーションエラー: " + strings.Join(parts, ", ")
}

// Fields は違反のあったフィールド名を返す
func (e *ValidationError) Fields() []string {
	names := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		names[i] = v.Field
	}
	return names
}
