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

// PullDocument reads a single document by its path.
func (s *Store) PullDocument(ctx context.Context, path storage.DocPath, out any) (bool, error) {
	table, err := s.tableFor(path.Collection)
	if err != nil {
		return false, err
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       documentKey(path),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get %s from DynamoDB: %w", path, err)
	}

	if result.Item == nil {
		return false, nil
	}

	if err := attributevalue.UnmarshalMap(result.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return true, nil
}

func documentKey(path storage.DocPath) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		documentIDField: &types.AttributeValueMemberS{Value: path.ID},
	}
}
