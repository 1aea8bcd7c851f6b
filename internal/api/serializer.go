package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
)

// ErrMalformedBody はリクエストボディが JSON オブジェクトとして読めない場合のエラー
var ErrMalformedBody = errors.New("リクエストの形式が不正です")

// fieldsAPI は数値を json.Number のまま残す設定。capacity の整数判定を浮動小数点に丸めさせない
var fieldsAPI = sonic.Config{UseNumber: true}.Froze()

// JSONSerializer は sonic を使う echo.JSONSerializer
type JSONSerializer struct{}

// Serialize はレスポンスを JSON に変換する
func (JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	var (
		b   []byte
		err error
	)
	if indent != "" {
		b, err = sonic.ConfigStd.MarshalIndent(i, "", indent)
	} else {
		b, err = sonic.ConfigStd.Marshal(i)
	}
	if err != nil {
		return err
	}
	_, err = c.Response().Write(append(b, '\n'))
	return err
}

// Deserialize はリクエストボディを構造体に変換する
func (JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です").SetInternal(err)
	}
	return nil
}

// DecodeFields はリクエストボディを JSON オブジェクトとしてフィールドマップに読み込む
// 型の検証はドメインのバリデーターに任せるため、ここでは値をそのまま残す
func DecodeFields(r io.Reader) (event.Fields, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	var v any
	if err := fieldsAPI.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: JSON オブジェクトではありません", ErrMalformedBody)
	}
	return event.Fields(m), nil
}
