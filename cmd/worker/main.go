package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/pedigree/backend/internal/db"
	"github.com/OFFIS-RIT/pedigree/backend/internal/queue"
	"github.com/OFFIS-RIT/pedigree/backend/internal/storage"
	"github.com/OFFIS-RIT/pedigree/backend/internal/util"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/leaselock"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger/console"
	"github.com/OFFIS-RIT/pedigree/backend/pkg/pedigree"
	pgstore "github.com/OFFIS-RIT/pedigree/backend/pkg/store/pgx"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  util.GetEnvBool("DEBUG", false),
		JSON:   util.GetEnvBool("LOG_JSON", false),
		Prefix: "worker",
	})
	logger.Init(consoleLogger)

	// Init s3 client
	s3Client, err := storage.NewS3Client(ctx)
	if err != nil {
		logger.Fatal("Failed to create s3 client", "err", err)
	}

	// Init pgx client
	pgConn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer pgConn.Close()

	processor := &queue.ExportProcessor{
		Jobs: db.New(pgConn),
		Builder: pedigree.NewBuilder(pedigree.NewBuilderParams{
			Source:   pgstore.NewPedigreeDBStorage(pgConn),
			MaxNodes: util.GetEnvInt("PEDIGREE_MAX_NODES", pedigree.DefaultMaxNodes),
		}),
		Objects:     storage.NewS3Store(s3Client, util.GetEnv("AWS_BUCKET")),
		Locks:       leaselock.New(pgConn),
		UploadTries: util.GetEnvInt("EXPORT_UPLOAD_TRIES", 3),
		UploadBackoff: util.Backoff{
			Initial: 500 * time.Millisecond,
			Max:     5 * time.Second,
		},
		LeaseTTL: util.GetEnvDuration("EXPORT_LEASE_TTL", leaselock.DefaultTTL),
	}

	// Init rabbitmq
	conn := queue.Init()
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.ExportQueue}); err != nil {
		logger.Fatal("Failed to declare queues", "err", err)
	}

	// Single consumer with prefetch=1 so that one export runs at a time
	consumerCh, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open consumer channel", "err", err)
	}
	defer consumerCh.Close()

	if err := consumerCh.Qos(1, 0, true); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := consumerCh.Consume(
		queue.ExportQueue,
		fmt.Sprintf("%s_consumer", queue.ExportQueue),
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.ExportQueue, "err", err)
	}

	logger.Info("Listening for messages", "queue", queue.ExportQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Info("Stopping message processor")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Info("Message channel closed", "queue", queue.ExportQueue)
					stop()
					return
				}

				startTime := time.Now()
				logger.Info("Received message", "queue", queue.ExportQueue)

				if err := processor.ProcessExportMessage(ctx, string(msg.Body)); err != nil {
					logger.Error("Error processing message", "queue", queue.ExportQueue, "err", err)
					queue.HandleProcessingError(consumerCh, msg, queue.ExportQueue, err)
				} else {
					if err := msg.Ack(false); err != nil {
						logger.Error("Failed to ack message", "err", err)
					}
					logger.Info("Message processed successfully", "queue", queue.ExportQueue)
				}

				logger.Info("Processing time", "duration", time.Since(startTime).Round(time.Millisecond))
			}
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, exiting...")
}
