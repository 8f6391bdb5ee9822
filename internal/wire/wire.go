// Package wire provides dependency injection for the dispatch engine.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/dispatch/internal/adapters/broadcast"
	"github.com/example/dispatch/internal/adapters/mapindex"
	"github.com/example/dispatch/internal/adapters/sqlite"
	"github.com/example/dispatch/internal/app"
	"github.com/example/dispatch/internal/config"
	"github.com/example/dispatch/internal/db"
	"github.com/example/dispatch/internal/logging"
	"github.com/example/dispatch/internal/ports/primary"
)

var (
	cfg            *config.Config
	plannerService primary.PlannerService
	taskService    primary.TaskService
	routingService primary.RoutingService
	agentService   primary.AgentService
	mapService     primary.MapService
	orderService   primary.OrderService
	eventService   primary.EventService
	once           sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// PlannerService returns the singleton PlannerService instance.
func PlannerService() primary.PlannerService {
	once.Do(initServices)
	return plannerService
}

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService {
	once.Do(initServices)
	return taskService
}

// RoutingService returns the singleton RoutingService instance.
func RoutingService() primary.RoutingService {
	once.Do(initServices)
	return routingService
}

// AgentService returns the singleton AgentService instance.
func AgentService() primary.AgentService {
	once.Do(initServices)
	return agentService
}

// MapService returns the singleton MapService instance.
func MapService() primary.MapService {
	once.Do(initServices)
	return mapService
}

// OrderService returns the singleton OrderService instance.
func OrderService() primary.OrderService {
	once.Do(initServices)
	return orderService
}

// EventService returns the singleton EventService instance.
func EventService() primary.EventService {
	once.Do(initServices)
	return eventService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) over the shared connection
	taskRepo := sqlite.NewTaskRepository(database)
	orderRepo := sqlite.NewOrderRepository(database)
	productRepo := sqlite.NewProductRepository(database)
	agentRepo := sqlite.NewAgentRepository(database)
	warehouseRepo := sqlite.NewWarehouseRepository(database)
	binRepo := sqlite.NewMapBinRepository(database)
	eventRepo := sqlite.NewTaskEventRepository(database)

	resolver := mapindex.NewResolver(binRepo)
	broadcaster := broadcast.NewEventBroadcaster(eventRepo, logger)

	// Services (primary ports implementation)
	plannerService = app.NewPlannerService(taskRepo, orderRepo, productRepo, agentRepo,
		warehouseRepo, broadcaster, cfg.DefaultPriority, cfg.MaxTasksPerAgent)
	taskService = app.NewTaskService(taskRepo, broadcaster)
	routingService = app.NewRoutingService(taskRepo, warehouseRepo, resolver)
	agentService = app.NewAgentService(agentRepo, taskRepo, warehouseRepo)
	mapService = app.NewMapService(binRepo, warehouseRepo, resolver)
	orderService = app.NewOrderService(orderRepo)
	eventService = app.NewEventService(eventRepo)
}
