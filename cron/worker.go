package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"movebook/config"
	"movebook/services/booking"
	"movebook/services/tasks"

	"github.com/hibiken/asynq"
)

// InitResyncWorker runs the async worker in background. The worker re-attempts
// calendar event creation for bookings that were confirmed while a provider was
// unreachable; tasks are only ever enqueued by an explicit operator trigger.
func InitResyncWorker(bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCalendarResync, handleResyncTask(bookingSvc))

	go func() {
		log.Println("[ResyncWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ResyncWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ResyncWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleResyncTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CalendarResyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ResyncWorker] invalid payload: %v", err)
			return err
		}

		appt, err := bookingSvc.ResyncCalendars(ctx, p.BookingID)
		if err != nil {
			log.Printf("[ResyncWorker] resync failed for booking %s: %v", p.BookingID, err)
			return err
		}
		log.Printf("[ResyncWorker] booking %s now synced to %d provider(s)", p.BookingID, len(appt.ExternalEventIDs))
		return nil
	}
}

// NewTaskClient returns an asynq client for enqueueing resync tasks.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
}
