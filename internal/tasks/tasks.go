package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/jhosasa/Real-State/internal/cache"
	"github.com/jhosasa/Real-State/internal/config"
	"github.com/jhosasa/Real-State/internal/services"
	"github.com/jhosasa/Real-State/internal/store"
	"github.com/jhosasa/Real-State/internal/utils"
)

// TaskType defines the type of a background task.
const (
	// TypeViewsSnapshot persists the in-memory view counters to Redis so
	// trending data survives a restart.
	TypeViewsSnapshot = "views:snapshot"
	// TypeAlertMatch evaluates one property alert against the store and
	// records matches as a notification.
	TypeAlertMatch = "alert:match"
)

// viewsSnapshotKey is the Redis hash the snapshot task writes to.
const viewsSnapshotKey = "views:snapshot"

// AlertMatchPayload identifies the alert to evaluate.
type AlertMatchPayload struct {
	AlertID string `json:"alert_id"`
}

// AlertNotification is what gets pushed onto the owner's notification list
// when an alert matches.
type AlertNotification struct {
	AlertID    string    `json:"alert_id"`
	AlertName  string    `json:"alert_name"`
	MatchCount int       `json:"match_count"`
	NotifiedAt time.Time `json:"notified_at"`
}

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// NewViewsSnapshotTask builds a views snapshot task. It carries no payload;
// the handler reads the live counters.
func NewViewsSnapshotTask() *asynq.Task {
	return asynq.NewTask(TypeViewsSnapshot, nil)
}

// NewAlertMatchTask builds an alert evaluation task for the given alert.
func NewAlertMatchTask(alertID utils.SixID) (*asynq.Task, error) {
	payload, err := json.Marshal(AlertMatchPayload{AlertID: alertID.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert match payload: %w", err)
	}
	return asynq.NewTask(TypeAlertMatch, payload), nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg         *config.Config
	store       *store.PropertyStore
	userService services.IUserService
	rdb         *redis.Client
}

func NewTaskProcessor(cfg *config.Config, st *store.PropertyStore, userService services.IUserService, rdb *redis.Client) *TaskProcessor {
	return &TaskProcessor{
		cfg:         cfg,
		store:       st,
		userService: userService,
		rdb:         rdb,
	}
}

// SetupServer configures and returns an Asynq server instance.
func SetupServer(rdb *redis.Client) *asynq.Server {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("Task %s failed: %v", task.Type(), err)
			}),
		},
	)
	return srv
}

// NewServeMux registers the task handlers on a fresh mux.
func NewServeMux(processor *TaskProcessor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeViewsSnapshot, processor.HandleViewsSnapshotTask)
	mux.HandleFunc(TypeAlertMatch, processor.HandleAlertMatchTask)
	return mux
}

// HandleViewsSnapshotTask writes the current view counter of every listing
// into a Redis hash, plus a timestamp of the snapshot.
func (p *TaskProcessor) HandleViewsSnapshotTask(ctx context.Context, t *asynq.Task) error {
	counts := p.store.ViewCounts()
	if len(counts) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(counts)+1)
	for id, views := range counts {
		fields[id] = views
	}
	fields["_snapshot_at"] = time.Now().UTC().Format(time.RFC3339)

	err := cache.Try(func() error {
		return p.rdb.HSet(ctx, viewsSnapshotKey, fields).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to persist views snapshot: %w", err)
	}
	log.Printf("Views snapshot persisted for %d listings", len(counts))
	return nil
}

// HandleAlertMatchTask evaluates one alert's saved filters against the
// current store snapshot. Matches produce a notification on the owner's
// list and stamp the alert as notified. Inactive or deleted alerts are a
// no-op, not an error.
func (p *TaskProcessor) HandleAlertMatchTask(ctx context.Context, t *asynq.Task) error {
	var payload AlertMatchPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal alert match payload: %w", err)
	}
	alertID, err := utils.ParseSixID(payload.AlertID)
	if err != nil {
		return fmt.Errorf("invalid alert ID %q: %w", payload.AlertID, err)
	}

	alert, err := p.userService.GetAlert(ctx, alertID)
	if err != nil {
		if errors.Is(err, services.ErrAlertNotFound) {
			return nil
		}
		return err
	}
	if !alert.IsActive {
		return nil
	}

	matches := services.ApplyFilters(p.store.Snapshot(), alert.Filters)
	if len(matches) == 0 {
		return nil
	}

	notification := AlertNotification{
		AlertID:    alert.ID.String(),
		AlertName:  alert.Name,
		MatchCount: len(matches),
		NotifiedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal alert notification: %w", err)
	}
	notifyKey := "user:" + alert.UserID.String() + ":notifications"
	err = cache.Try(func() error {
		return p.rdb.LPush(ctx, notifyKey, data).Err()
	})
	if err != nil {
		return fmt.Errorf("failed to push notification for alert %s: %w", alert.ID.String(), err)
	}

	if err := p.userService.MarkAlertNotified(ctx, alertID); err != nil {
		log.Printf("WARN: failed to stamp alert %s as notified: %v", alertID.String(), err)
	}
	return nil
}
