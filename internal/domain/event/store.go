package event

import "context"

// Store はイベントを保存するキーバリューストアのゲートウェイ
// 全ての操作は eventId をキーとする。ビジネスロジックや検証は持たない。
// 下位ストアの失敗はすべて ErrStoreUnavailable として返す。
type Store interface {
	// Put はイベントを無条件に upsert する
	Put(ctx context.Context, e *Event) error

	// Get はイベントを取得する。存在しない場合は found=false でエラーにはしない
	Get(ctx context.Context, eventID string) (e *Event, found bool, err error)

	// ScanAll は全イベントを返す。status が空でなければ status が完全一致するものだけを返す
	// 順序は保証しない。該当なしは空スライス
	ScanAll(ctx context.Context, status string) ([]*Event, error)

	// Delete はイベントを削除する。存在しないキーでも成功する
	Delete(ctx context.Context, eventID string) error
}
