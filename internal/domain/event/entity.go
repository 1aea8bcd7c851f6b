package event

// Event はイベントエンティティを表す
type Event struct {
	EventID     string `json:"eventId" dynamodbav:"eventId" db:"event_id" redis:"eventId"`
	Title       string `json:"title" dynamodbav:"title" db:"title" redis:"title"`
	Description string `json:"description" dynamodbav:"description" db:"description" redis:"description"`
	Date        string `json:"date" dynamodbav:"date" db:"date" redis:"date"`
	Location    string `json:"location" dynamodbav:"location" db:"location" redis:"location"`
	Capacity    int    `json:"capacity" dynamodbav:"capacity" db:"capacity" redis:"capacity"`
	Organizer   string `json:"organizer" dynamodbav:"organizer" db:"organizer" redis:"organizer"`
	Status      string `json:"status" dynamodbav:"status" db:"status" redis:"status"`
}

// NewEvent は検証済みのフィールドからイベントを作成する
// fields は Validate(fields, true) を通過している必要がある
func NewEvent(id string, fields Fields) *Event {
	e := &Event{EventID: id}
	PatchFromFields(fields).ApplyTo(e)
	return e
}

// Clone はイベントのコピーを返す
func (e *Event) Clone() *Event {
	c := *e
	return &c
}

// Optional は「未指定」と「ゼロ値が指定された」を区別する
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some は値が指定された Optional を返す
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Patch は部分更新の内容を表す
// EventID は含まない（更新で変更されることはない）
type Patch struct {
	Title       Optional[string]
	Description Optional[string]
	Date        Optional[string]
	Location    Optional[string]
	Capacity    Optional[int]
	Organizer   Optional[string]
	Status      Optional[string]
}

// PatchFromFields は検証済みのフィールドマップから Patch を作成する
// 型が合わないフィールドは無視されるため、事前に Validate を通すこと
func PatchFromFields(fields Fields) Patch {
	var p Patch
	p.Title = stringField(fields, FieldTitle)
	p.Description = stringField(fields, FieldDescription)
	p.Date = stringField(fields, FieldDate)
	p.Location = stringField(fields, FieldLocation)
	p.Organizer = stringField(fields, FieldOrganizer)
	p.Status = stringField(fields, FieldStatus)
	if v, ok := fields[FieldCapacity]; ok {
		if n, ok := asInt(v); ok {
			p.Capacity = Some(n)
		}
	}
	return p
}

// IsEmpty は何も指定されていない場合に true を返す
func (p Patch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Date.Set && !p.Location.Set &&
		!p.Capacity.Set && !p.Organizer.Set && !p.Status.Set
}

// ApplyTo は指定されたフィールドだけを e に上書きする
func (p Patch) ApplyTo(e *Event) {
	if p.Title.Set {
		e.Title = p.Title.Value
	}
	if p.Description.Set {
		e.Description = p.Description.Value
	}
	if p.Date.Set {
		e.Date = p.Date.Value
	}
	if p.Location.Set {
		e.Location = p.Location.Value
	}
	if p.Capacity.Set {
		e.Capacity = p.Capacity.Value
	}
	if p.Organizer.Set {
		e.Organizer = p.Organizer.Value
	}
	if p.Status.Set {
		e.Status = p.Status.Value
	}
}

func stringField(fields Fields, name string) Optional[string] {
	if v, ok := fields[name]; ok {
		if s, ok := v.(string); ok {
			return Some(s)
		}
	}
	return Optional[string]{}
}
