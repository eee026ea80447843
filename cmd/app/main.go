package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/cloudsync"
	"github.com/chris/topup-storefront/pkg/config"
	"github.com/chris/topup-storefront/pkg/handlers"
	"github.com/chris/topup-storefront/pkg/ledger"
	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/logger"
	"github.com/chris/topup-storefront/pkg/orders"
	"github.com/chris/topup-storefront/pkg/scheduler"
	"github.com/chris/topup-storefront/pkg/session"
	"github.com/chris/topup-storefront/pkg/settings"
	"github.com/chris/topup-storefront/pkg/storage"
	dydbstore "github.com/chris/topup-storefront/pkg/storage/dynamodb"
	"github.com/chris/topup-storefront/pkg/storefront"
	"github.com/chris/topup-storefront/pkg/websockets"
	"go.uber.org/zap"
)

func main() {
	if !config.LoadDotEnv() {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	l, err := logger.CreateLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer l.Sync()
	zl := l.Logger

	local, err := localstore.Open(cfg.LocalStorePath, zl.Named("localstore"))
	if err != nil {
		zl.Fatal("failed to open local store", zap.String("path", cfg.LocalStorePath), zap.Error(err))
	}
	defer local.Close()

	clk := clock.System{}
	health := cloudsync.NewHealth(cfg.CloudSyncEnabled, zl.Named("cloudsync"))

	// With cloud sync off the gate never calls through, so no remote store is built.
	var remoteStore storage.RemoteStore
	var sqsClient *sqs.Client
	if cfg.CloudSyncEnabled {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			zl.Fatal("unable to load SDK config", zap.Error(err))
		}

		dbClient := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
			}
		})
		remoteStore = dydbstore.New(dbClient, cfg.OrdersTableName, cfg.UsersTableName, cfg.SettingsTableName)

		if cfg.MirrorQueueURL != "" {
			sqsClient = sqs.NewFromConfig(awsCfg)
		}
	}
	remote := cloudsync.NewRemote(remoteStore, health, cfg.RemoteTimeout)

	var sched scheduler.Scheduler
	var async *scheduler.Async
	if sqsClient != nil {
		zl.Info("mirroring through SQS", zap.String("queueUrl", cfg.MirrorQueueURL))
		sched = scheduler.NewSQSScheduler(sqsClient, cfg.MirrorQueueURL)
	} else {
		async = scheduler.NewAsync(cloudsync.NewApplier(remote).Apply, cfg.MirrorBuffer, zl.Named("mirror"))
		sched = async
	}
	mirror := cloudsync.NewMirror(sched, health, clk)

	puller := cloudsync.NewPuller(remote, local, health, cloudsync.PullerOptions{
		Interval: cfg.SyncInterval,
		Clock:    clk,
	}, zl.Named("puller"))

	hub := websockets.NewHub(zl.Named("websockets"))
	holder := session.New(local, zl.Named("session"))
	ldg := ledger.New(local, holder, mirror, hub, clk, ledger.Options{
		AllowNonPositiveDeposits: cfg.AllowNonPositiveDeposits,
	}, zl.Named("ledger"))
	orderBook := orders.New(local, mirror, puller, hub, zl.Named("orders"))
	settingsRepo := settings.New(local, mirror, clk, zl.Named("settings"))
	store := storefront.New(orderBook, ldg, settingsRepo, clk, zl.Named("storefront"))

	orderBook.InitVisitors()
	puller.MaybePull(context.Background())

	const readHeaderTimeout = 5 * time.Second
	server := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handlers.NewRouter(store, hub, zl.Named("http")),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		const shutdownTimeout = 30 * time.Second
		shutdownCtx, cancel := context.WithTimeout(serverCtx, shutdownTimeout)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
				zl.Fatal("graceful shutdown timed out, forcing exit")
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			zl.Error("failed to shut down server", zap.Error(err))
		}
		puller.Wait()
		if async != nil {
			async.Close()
		}
		serverStopCtx()
	}()

	zl.Info("starting server",
		zap.String("addr", server.Addr),
		zap.Bool("cloudSync", cfg.CloudSyncEnabled))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("failed to start server", zap.Error(err))
	}

	<-serverCtx.Done()
}
