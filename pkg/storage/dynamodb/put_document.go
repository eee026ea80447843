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

// PutDocument upserts a whole document. Writing the same path twice leaves
// one item holding the later value.
func (s *Store) PutDocument(ctx context.Context, path storage.DocPath, value any) error {
	table, err := s.tableFor(path.Collection)
	if err != nil {
		return err
	}

	item, err := attributevalue.MarshalMap(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	// The path is authoritative for the key, whatever the value carries.
	item[documentIDField] = &types.AttributeValueMemberS{Value: path.ID}
	if path.Collection == storage.CollectionOrders {
		item[ordersGSIKey] = &types.AttributeValueMemberS{Value: ordersPartition}
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", path, err)
	}
	return nil
}
