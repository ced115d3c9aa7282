package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"stayline/config"
	"stayline/services/crm"
	"stayline/services/tasks"

	"github.com/hibiken/asynq"
)

// InitLeadSyncWorker runs the async CRM sync worker in background. Sync
// failures are retried by asynq with its default backoff; a lead that still
// fails after the task's max retries is dropped and logged.
func InitLeadSyncWorker(crmClient *crm.Client) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(tasks.TypeLeadSync, handleLeadSyncTask(crmClient))

	// Start async worker with retry logic
	go func() {
		log.Println("[LeadSyncWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[LeadSyncWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[LeadSyncWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleLeadSyncTask(crmClient *crm.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.LeadSyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[LeadSyncWorker] invalid payload: %v", err)
			return err
		}
		return crmClient.SyncLead(p.UserID, p.ContextData, p.UpdatedFields)
	}
}

// NewQueueClient creates the asynq client used to enqueue lead sync tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}
