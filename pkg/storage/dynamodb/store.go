package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/topup-storefront/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the Store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

const (
	// ordersGSI indexes every order under a constant partition key, sorted by timestamp.
	ordersGSI       = "gsi1pk-timestamp-index"
	ordersGSIKey    = "gsi1pk"
	ordersPartition = "ORDERS"
	ordersSortField = "timestamp"
	documentIDField = "id"
)

// Store implements storage.RemoteStore with one DynamoDB table per collection.
type Store struct {
	Client            DynamoDBAPI
	OrdersTableName   string
	UsersTableName    string
	SettingsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, ordersTable, usersTable, settingsTable string) *Store {
	return &Store{
		Client:            client,
		OrdersTableName:   ordersTable,
		UsersTableName:    usersTable,
		SettingsTableName: settingsTable,
	}
}

// Make sure we conform to the interface
var _ storage.RemoteStore = (*Store)(nil)

func (s *Store) tableFor(collection string) (string, error) {
	switch collection {
	case storage.CollectionOrders:
		return s.OrdersTableName, nil
	case storage.CollectionUsers:
		return s.UsersTableName, nil
	case storage.CollectionSettings:
		return s.SettingsTableName, nil
	}
	return "", fmt.Errorf("%w: %s", storage.ErrUnknownCollection, collection)
}
