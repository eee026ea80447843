package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/topup-storefront/pkg/cloudsync"
	"github.com/chris/topup-storefront/pkg/config"
	"github.com/chris/topup-storefront/pkg/logger"
	"github.com/chris/topup-storefront/pkg/scheduler"
	"github.com/chris/topup-storefront/pkg/storage"
	dydbstore "github.com/chris/topup-storefront/pkg/storage/dynamodb"
	"go.uber.org/zap"
)

var (
	applier *cloudsync.Applier
	zl      *zap.Logger
)

func setup() {
	if !config.LoadDotEnv() {
		log.Println("No .env file found, using environment variables")
	}

	l, err := logger.CreateLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Println("using default log level:", err)
	}
	zl = l.Logger

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		zl.Fatal("unable to load SDK config", zap.Error(err))
	}

	ordersTable := os.Getenv("DYNAMODB_ORDERS_TABLE_NAME")
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")
	settingsTable := os.Getenv("DYNAMODB_SETTINGS_TABLE_NAME")
	if ordersTable == "" || usersTable == "" || settingsTable == "" {
		zl.Fatal("one or more DynamoDB table name environment variables are not set")
	}

	store := dydbstore.New(dynamodb.NewFromConfig(cfg), ordersTable, usersTable, settingsTable)
	applier = cloudsync.NewApplier(store)
}

// HandleRequest applies mirrored writes in queue order. Returning an error
// makes SQS redeliver the batch. Patches aimed at a document that no longer
// exists are dropped.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		task, err := scheduler.DecodeTask(message.Body)
		if err != nil {
			zl.Error("failed to decode mirror task", zap.String("messageId", message.MessageId), zap.Error(err))
			return err
		}

		err = applier.Apply(ctx, task)
		if errors.Is(err, storage.ErrDocumentNotFound) {
			zl.Warn("mirror task target is gone, skipping",
				zap.String("messageId", message.MessageId),
				zap.String("path", task.Path.String()),
				zap.String("op", string(task.Op)))
			continue
		}
		if err != nil {
			zl.Error("failed to apply mirror task",
				zap.String("messageId", message.MessageId),
				zap.String("path", task.Path.String()),
				zap.String("op", string(task.Op)),
				zap.Error(err))
			return err
		}

		zl.Debug("mirror task applied", zap.String("task", task.ID), zap.String("path", task.Path.String()))
	}

	return nil
}

func main() {
	setup()
	lambda.Start(HandleRequest)
}
