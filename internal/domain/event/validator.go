package event

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout は date フィールドの書式（YYYY-MM-DD）
const DateLayout = "2006-01-02"

var validate = validator.New()

// 空白のみを許さない文字列フィールド
var nonEmptyFields = map[string]bool{
	FieldTitle:     true,
	FieldLocation:  true,
	FieldOrganizer: true,
	FieldStatus:    true,
}

// Validate はフィールドマップをイベントスキーマに照らして検証する
//
// requireAll が true の場合（作成時）はスキーマの全フィールドが必須で、欠落は missing として報告する。
// false の場合（更新時）は candidate に含まれるフィールドだけを検証する。
// 違反はスキーマの定義順にすべて返す。問題がなければ空のスライスを返す。
// eventId はスキーマ外として扱い、ここでは検証しない。
func Validate(candidate Fields, requireAll bool) []Violation {
	violations := []Violation{}
	for _, name := range SchemaFields {
		v, ok := candidate[name]
		if !ok {
			if requireAll {
				violations = append(violations, Violation{Field: name, Reason: ReasonMissing})
			}
			continue
		}
		if reason, bad := checkField(name, v); bad {
			violations = append(violations, Violation{Field: name, Reason: reason})
		}
	}
	return violations
}

// ValidateForCreate は作成リクエストを検証する
// eventId が指定されている場合は文字列であることも確認する
func ValidateForCreate(fields Fields) []Violation {
	var violations []Violation
	if v, ok := fields[FieldEventID]; ok && v != nil {
		if _, isString := v.(string); !isString {
			violations = append(violations, Violation{Field: FieldEventID, Reason: ReasonWrongType})
		}
	}
	return append(violations, Validate(fields.Without(FieldEventID), true)...)
}

// ValidateForUpdate は部分更新リクエストを検証する
// eventId は更新で変更されないため無視する
func ValidateForUpdate(fields Fields) []Violation {
	return Validate(fields.Without(FieldEventID), false)
}

func checkField(name string, v any) (Reason, bool) {
	switch name {
	case FieldCapacity:
		n, ok := asInt(v)
		if !ok {
			return ReasonWrongType, true
		}
		if n < 0 {
			return ReasonNegative, true
		}
		return "", false
	case FieldDate:
		s, ok := v.(string)
		if !ok {
			return ReasonWrongType, true
		}
		// time.Parse による検証なので 2024-02-30 のような存在しない日付も弾かれる
		if err := validate.Var(s, "datetime="+DateLayout); err != nil {
			return ReasonInvalidFormat, true
		}
		return "", false
	default:
		s, ok := v.(string)
		if !ok {
			return ReasonWrongType, true
		}
		if nonEmptyFields[name] && strings.TrimSpace(s) == "" {
			return ReasonEmpty, true
		}
		return "", false
	}
}
