package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/topup-storefront/pkg/storage"
)

// PullCollection reads a collection into out. Orders sorted by timestamp go
// through the orders GSI; everything else is a paginated scan.
func (s *Store) PullCollection(ctx context.Context, collection string, q storage.CollectionQuery, out any) error {
	table, err := s.tableFor(collection)
	if err != nil {
		return err
	}

	var items []map[string]types.AttributeValue
	if collection == storage.CollectionOrders && q.OrderBy == ordersSortField {
		items, err = s.queryOrders(ctx, table, q)
	} else {
		items, err = s.scan(ctx, table, q.Limit)
	}
	if err != nil {
		return err
	}

	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", collection, err)
	}
	return nil
}

func (s *Store) queryOrders(ctx context.Context, table string, q storage.CollectionQuery) ([]map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(table),
		IndexName:              aws.String(ordersGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: ordersPartition},
		},
		ScanIndexForward: aws.Bool(!q.Descending),
	}
	if q.Limit > 0 {
		input.Limit = aws.Int32(q.Limit)
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for orders: %w", err)
	}
	return result.Items, nil
}

func (s *Store) scan(ctx context.Context, table string, limit int32) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	input := &dynamodb.ScanInput{TableName: aws.String(table)}
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		items = append(items, result.Items...)
		if limit > 0 && int32(len(items)) >= limit {
			return items[:limit], nil
		}
		if len(result.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
