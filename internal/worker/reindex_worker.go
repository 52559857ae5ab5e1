package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"graidea-reviews/internal/app"
	"graidea-reviews/internal/platform/rabbitmq"
)

// ReindexWorker drains queued reindex requests and rebuilds the review
// index for each one. The indexer itself serializes concurrent rebuilds.
type ReindexWorker struct {
	conn      *amqp.Connection
	indexer   *app.IndexerService
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewReindexWorker(conn *amqp.Connection, indexer *app.IndexerService, queueName string) *ReindexWorker {
	return &ReindexWorker{
		conn:      conn,
		indexer:   indexer,
		queueName: queueName,
	}
}

func (w *ReindexWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare reindex queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume reindex queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var req rabbitmq.ReindexRequest
				if err := json.Unmarshal(d.Body, &req); err != nil {
					log.Printf("worker decode reindex request failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				result, err := w.indexer.Reload(workerCtx)
				if err != nil {
					log.Printf("worker reindex failed (reason %q): %v", req.Reason, err)
					_ = d.Nack(false, false)
					continue
				}

				log.Printf("worker reindexed %d reviews (reason %q)", result.TotalDocuments, req.Reason)
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *ReindexWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
