package event

import (
	"encoding/json"
	"math"
)

// スキーマのフィールド名（JSON / ストアの属性名と一致）
const (
	FieldEventID     = "eventId"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldLocation    = "location"
	FieldCapacity    = "capacity"
	FieldOrganizer   = "organizer"
	FieldStatus      = "status"
)

// SchemaFields は eventId 以外のスキーマフィールドを定義順で返す
var SchemaFields = []string{
	FieldTitle,
	FieldDescription,
	FieldDate,
	FieldLocation,
	FieldCapacity,
	FieldOrganizer,
	FieldStatus,
}

// Fields はリクエストから受け取った型の決まっていないフィールドマップ
type Fields map[string]any

// EventID は呼び出し元が指定した eventId を返す
// 未指定・null・空文字・文字列以外の場合は ok=false
func (f Fields) EventID() (string, bool) {
	s, ok := f[FieldEventID].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Without は指定したキーを除いたコピーを返す
func (f Fields) Without(keys ...string) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// asInt は整数として解釈できる値を int に変換する
// JSON デコード結果（json.Number / float64）と Go の整数型を受け付ける
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint:
		return uintToInt(uint64(n))
	case uint64:
		return uintToInt(n)
	case uintptr:
		return uintToInt(uint64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// int に収まらない負の整数は負であることだけが意味を持つ
	if f < math.MinInt {
		return math.MinInt, true
	}
	if f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

func uintToInt(u uint64) (int, bool) {
	if u > math.MaxInt {
		return 0, false
	}
	return int(u), true
}
