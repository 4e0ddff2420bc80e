package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"dailydiet/internal/model"
)

// SummaryRebuilder recomputes a user's diet summary straight from the store.
type SummaryRebuilder interface {
	ComputeSummary(userID string) (*model.Summary, error)
}

// SummaryCacheWriter persists a precomputed summary for later reads.
type SummaryCacheWriter interface {
	SetSummary(ctx context.Context, userID string, summary model.Summary) error
}

// SummaryRefreshWorker consumes meal-change events and warms the summary cache,
// so most summary reads after a mutation hit redis instead of MySQL.
type SummaryRefreshWorker struct {
	conn      *amqp.Connection
	rebuilder SummaryRebuilder
	cache     SummaryCacheWriter
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSummaryRefreshWorker(conn *amqp.Connection, rebuilder SummaryRebuilder, cache SummaryCacheWriter, queueName string) *SummaryRefreshWorker {
	return &SummaryRefreshWorker{
		conn:      conn,
		rebuilder: rebuilder,
		cache:     cache,
		queueName: queueName,
	}
}

func (w *SummaryRefreshWorker) Start(ctx context.Context) error {
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
		return fmt.Errorf("declare worker queue failed: %w", err)
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
		return fmt.Errorf("consume queue failed: %w", err)
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

				var event model.MealEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode meal event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.refresh(workerCtx, event.UserID); err != nil {
					log.Printf("worker refresh summary failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *SummaryRefreshWorker) refresh(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("meal event without user id")
	}
	summary, err := w.rebuilder.ComputeSummary(userID)
	if err != nil {
		return err
	}
	return w.cache.SetSummary(ctx, userID, *summary)
}

func (w *SummaryRefreshWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
