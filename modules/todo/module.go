package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	domain "github.com/fajshah/faj-todo-phase2/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TodoModule provides owner-scoped task management services.
type TodoModule struct {
	db        *gorm.DB
	redis     *redis.Client
	cache     *Cache
	service   *Service
	dbPath    string
	redisAddr string
}

// Compile-time interface checks.
var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.HealthCheckableModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule. Caching is enabled only when
// REDIS_ADDR is set.
func NewModule() *TodoModule {
	dbPath := os.Getenv("TODO_DB_PATH")
	if dbPath == "" {
		dbPath = "todos.db"
	}
	return &TodoModule{
		dbPath:    dbPath,
		redisAddr: os.Getenv("REDIS_ADDR"),
	}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// Start initializes the database, the optional Redis cache and the service.
func (m *TodoModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if m.redisAddr != "" {
		m.redis = redis.NewClient(&redis.Options{
			Addr:         m.redisAddr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		m.cache = NewCache(m.redis)
		if err := m.cache.Ping(context.Background()); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Printf("[todo] Task cache enabled (redis: %s)", m.redisAddr)
	}

	m.service = NewService(NewRepository(db), m.cache)

	log.Printf("[todo] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop closes the database and Redis connections.
func (m *TodoModule) Stop(_ context.Context) error {
	if m.redis != nil {
		if err := m.redis.Close(); err != nil {
			log.Printf("[todo] Error closing Redis connection: %v", err)
		}
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[todo] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TodoModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"database": m.dbPath,
		"cache":    m.cache != nil,
	}

	// No-op when the cache is disabled.
	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("cache ping failed: %v", err),
			Details: details,
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "toggle", json.Unmarshal, json.Marshal, m.handleToggle,
	); err != nil {
		return fmt.Errorf("failed to register toggle service: %w", err)
	}

	log.Printf("[todo] Registered services: list, get, create, update, delete, toggle")
	return nil
}

func (m *TodoModule) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	resp, err := m.service.List(ctx, req.UserID, ListFilter{Status: req.Status, Priority: req.Priority}, req.Page, req.Limit)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return *resp, nil
}

func (m *TodoModule) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.GetByID(ctx, req.UserID, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *t}, nil
}

func (m *TodoModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Create(ctx, req.UserID, req.Title, req.Description, req.Status, req.Priority)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *t}, nil
}

func (m *TodoModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.Update(ctx, req)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *t}, nil
}

func (m *TodoModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.UserID, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

func (m *TodoModule) handleToggle(ctx context.Context, req ToggleTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	t, err := m.service.ToggleCompletion(ctx, req.UserID, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *t}, nil
}
