package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/chris/topup-storefront/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPullDocument(t *testing.T) {
	banner := storage.BannerRecord{IsVisible: true, Title: "Sale", Message: "20% off", Style: "promo"}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SettingsTableName: "settings"}

		item, err := attributevalue.MarshalMap(banner)
		require.NoError(t, err)
		item["id"] = &types.AttributeValueMemberS{Value: "banner"}

		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
			key, ok := in.Key["id"].(*types.AttributeValueMemberS)
			return aws.ToString(in.TableName) == "settings" && ok && key.Value == "banner"
		})).Return(&dynamodb.GetItemOutput{Item: item}, nil).Once()

		var result storage.BannerRecord
		found, err := store.PullDocument(context.Background(), storage.SettingsPath(storage.SettingsBanner), &result)

		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, banner, result)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SettingsTableName: "settings"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil).Once()

		var result storage.BannerRecord
		found, err := store.PullDocument(context.Background(), storage.SettingsPath(storage.SettingsBanner), &result)

		assert.NoError(t, err)
		assert.False(t, found)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, SettingsTableName: "settings"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(nil, errors.New("get failed")).Once()

		var result storage.BannerRecord
		_, err := store.PullDocument(context.Background(), storage.SettingsPath(storage.SettingsBanner), &result)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get settings/banner from DynamoDB")
		mockClient.AssertExpectations(t)
	})
}
