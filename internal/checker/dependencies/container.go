package dependencies

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"UpWatch/internal/checker/dispatcher"
	"UpWatch/internal/checker/engine"
	"UpWatch/internal/checker/escalation"
	"UpWatch/internal/checker/location"
	runner "UpWatch/internal/checker/runners"
	"UpWatch/internal/config"
	"UpWatch/internal/storage"
)

type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Storage
	MonitorStore storage.MonitorStore
	ResultStore  storage.ResultStore
	RunLock      storage.RunLock

	// Checker
	Engine *engine.Engine

	// Database connections
	DB *pgxpool.Pool
}

func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: log,
	}

	if err := container.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := container.initRedis(); err != nil {
		container.Close()
		return nil, err
	}

	container.initStorage()
	container.initEngine()

	log.Info("Dependency container initialized successfully")
	return container, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	db, err := storage.NewPostgres(ctx, &c.Config.Database, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.DB = db
	return nil
}

// initRedis wires the run lock. Redis is optional: with no addr configured
// runs proceed unguarded.
func (c *Container) initRedis() error {
	if c.Config.Redis.Addr == "" {
		c.Logger.Info("redis not configured, run lock disabled")
		return nil
	}

	lock, err := storage.NewRunLock(&c.Config.Redis, c.Config.Checker.LockTTL, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.RunLock = lock
	return nil
}

func (c *Container) initStorage() {
	c.MonitorStore = storage.NewMonitorStore(c.DB, c.Logger)
	c.ResultStore = storage.NewResultStore(c.DB)
}

func (c *Container) initEngine() {
	factory := runner.NewFactory(
		runner.NewHTTPRunner(),
		runner.NewTCPRunner(),
		runner.NewDNSRunner(c.Config.Checker.DNSResolver),
	)

	disp := dispatcher.NewDispatcher(factory, c.Config.Checker.MaxConcurrency, c.Logger)
	loc := location.NewResolver(c.Config.Location.TraceURL, c.Logger)

	esc := escalation.NewDispatcher(
		escalation.NewEventsClient(c.Config.Escalation.EventsURL, c.Config.Escalation.RoutingKey),
		escalation.NewChatWebhook(c.Config.Escalation.FallbackWebhookURL),
		c.Logger,
	)

	c.Engine = engine.New(
		c.MonitorStore,
		c.ResultStore,
		c.RunLock,
		disp,
		loc,
		esc,
		c.Logger,
	)
}

func (c *Container) Close() {
	if c.RunLock != nil {
		if err := c.RunLock.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
