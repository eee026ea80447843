package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/topup-storefront/pkg/storage"
)

// PatchDocument sets the given top-level fields on an existing document.
func (s *Store) PatchDocument(ctx context.Context, path storage.DocPath, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	table, err := s.tableFor(path.Collection)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	sets := make([]string, 0, len(names))
	attrNames := map[string]string{"#id": documentIDField}
	attrValues := map[string]types.AttributeValue{}
	for i, name := range names {
		if name == documentIDField {
			return fmt.Errorf("failed to patch %s: the id field is immutable", path)
		}
		av, err := attributevalue.Marshal(fields[name])
		if err != nil {
			return fmt.Errorf("failed to marshal field %s: %w", name, err)
		}
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		attrNames[nameKey] = name
		attrValues[valueKey] = av
		sets = append(sets, nameKey+" = "+valueKey)
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       documentKey(path),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  attrNames,
		ExpressionAttributeValues: attrValues,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("failed to patch %s: %w", path, storage.ErrDocumentNotFound)
		}
		return fmt.Errorf("failed to patch %s: %w", path, err)
	}
	return nil
}
