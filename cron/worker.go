package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"servicefinder/config"
	notificationRepo "servicefinder/database/repository/notification"
	"servicefinder/services/notification"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async delivery worker in background and
// returns a stop function for graceful shutdown.
// Notifications are already durable in Mongo by the time a task is enqueued;
// the worker only pushes them out and records the attempt.
func InitNotificationWorker(repo notificationRepo.NotificationRepository) func() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotificationDeliver, handleDeliverTask(repo))

	stop := make(chan struct{})
	go monitorRedisConnection(stop)

	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	return func() {
		close(stop)
		srv.Shutdown()
	}
}

func handleDeliverTask(repo notificationRepo.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notification.DeliverPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotificationWorker] invalid payload: %v", err)
			return err
		}

		// Delivery transport is in-app only: marking the document sent is
		// what flips it into the recipient's feed poll.
		if err := repo.MarkSent(ctx, p.NotificationID); err != nil {
			log.Printf("[NotificationWorker] failed to mark %s sent: %v", p.NotificationID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at
// runtime, until stop is closed.
func monitorRedisConnection(stop <-chan struct{}) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	ctx := context.Background()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				log.Printf("[NotificationWorker] redis connection lost: %v", err)
			}
		}
	}
}
