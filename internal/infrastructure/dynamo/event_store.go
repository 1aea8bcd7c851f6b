package dynamo

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/domain/event"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
)

const (
	attrEventID = "eventId"
	attrStatus  = "status"
)

// API は EventStore が使う DynamoDB の操作
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// EventStore は event.Store のDynamoDB実装
// 1イベント1アイテムで、全フィールドをトップレベルのスカラー属性として保存する
type EventStore struct {
	client API
	table  string
}

// NewEventStore はEventStoreを作成する
func NewEventStore(client API, table string) *EventStore {
	return &EventStore{client: client, table: table}
}

// Put はイベントを PutItem で upsert する
func (s *EventStore) Put(ctx context.Context, e *event.Event) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return s.fail("put", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return s.fail("put", err)
	}
	return nil
}

// Get はイベントを GetItem で取得する
func (s *EventStore) Get(ctx context.Context, eventID string) (*event.Event, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       key(eventID),
	})
	if err != nil {
		return nil, false, s.fail("get", err)
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}

	var e event.Event
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, false, s.fail("get", err)
	}
	return &e, true, nil
}

// ScanAll はテーブル全体を Scan する
// LastEvaluatedKey を辿って全ページを読み、status 指定時は FilterExpression で絞り込む
func (s *EventStore) ScanAll(ctx context.Context, status string) ([]*event.Event, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(s.table)}
	if status != "" {
		expr, err := expression.NewBuilder().
			WithFilter(expression.Name(attrStatus).Equal(expression.Value(status))).
			Build()
		if err != nil {
			return nil, s.fail("scan", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	events := []*event.Event{}
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.fail("scan", err)
		}
		var batch []*event.Event
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, s.fail("scan", err)
		}
		events = append(events, batch...)
	}
	return events, nil
}

// Delete はイベントを DeleteItem で削除する。存在しないキーでも成功する
func (s *EventStore) Delete(ctx context.Context, eventID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       key(eventID),
	})
	if err != nil {
		return s.fail("delete", err)
	}
	return nil
}

// fail は原因をログに残し、呼び出し元には ErrStoreUnavailable だけを返す
func (s *EventStore) fail(op string, err error) error {
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("table", s.table),
		zap.Error(err),
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.String("error_code", apiErr.ErrorCode()))
	}
	logger.Error("DynamoDB操作に失敗しました", fields...)
	return event.ErrStoreUnavailable
}

func key(eventID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrEventID: &types.AttributeValueMemberS{Value: eventID},
	}
}

// インターフェースを満たしているか確認
var _ event.Store = (*EventStore)(nil)
