package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"laundrify/config"
	"laundrify/models"
	"laundrify/services/catalog"
	"laundrify/services/notification"

	"github.com/hibiken/asynq"
)

const (
	TypePickupReminder = "reminder:pickup"
	TypeCatalogRefresh = "catalog:refresh"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// AsynqReminderScheduler enqueues pickup reminders for delivery at their
// fire time.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// SchedulePickupReminder queues a reminder task to fire at reminder.RemindAt.
// Reminders already in the past are delivered immediately.
func (s *AsynqReminderScheduler) SchedulePickupReminder(ctx context.Context, reminder models.PickupReminder) error {
	payload, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("cron: failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypePickupReminder, payload)
	opts := []asynq.Option{asynq.MaxRetry(3)}
	if reminder.RemindAt.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(reminder.RemindAt))
	}

	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("cron: failed to enqueue pickup reminder: %w", err)
	}
	return nil
}

func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.Service, catalogSvc catalog.Service) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePickupReminder, handleReminderTask(notifSvc))
	mux.HandleFunc(TypeCatalogRefresh, handleCatalogRefresh(catalogSvc))

	go scheduleCatalogRefresh()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var reminder models.PickupReminder
		if err := json.Unmarshal(task.Payload(), &reminder); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		if notifSvc == nil {
			log.Printf("[ReminderHandler] push channel disabled, dropping reminder for order %s", reminder.OrderID)
			return nil
		}

		if err := notifSvc.SendPickupReminder(ctx, reminder); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for order %s: %v", reminder.OrderID, err)
			return err
		}
		return nil
	}
}

func handleCatalogRefresh(catalogSvc catalog.Service) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		if err := catalogSvc.RefreshCache(ctx); err != nil {
			log.Printf("[CatalogRefresh] refresh failed: %v", err)
			return err
		}
		return nil
	}
}

// scheduleCatalogRefresh keeps the service catalog cache warm by enqueueing
// a refresh task every few minutes.
func scheduleCatalogRefresh() {
	client := asynq.NewClient(redisOpts())
	defer client.Close()

	ticker := time.NewTicker(4 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		task := asynq.NewTask(TypeCatalogRefresh, nil)
		if _, err := client.Enqueue(task, asynq.MaxRetry(1)); err != nil {
			log.Printf("[CatalogRefresh] failed to enqueue refresh: %v", err)
		}
	}
}
