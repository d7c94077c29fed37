package di

import (
	"context"
	"fmt"
	"log"

	"sd-server/api"
	"sd-server/api/sheets"
	"sd-server/config"
	"sd-server/dao/redis"
	"sd-server/db"
	"sd-server/server"
	"sd-server/server/handlers"
	services "sd-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient               db.RedisClient
	RedisHistoryDao           *redis.RedisHistoryDAO
	ShipmentsFeedAPI          sheets.ShipmentsFeedAPI
	DashboardService          *services.DashboardService
	DashboardHandler          *handlers.DashboardHandler
	MuxRouter                 *mux.Router
	Router                    *server.Router
	ShipmentDashHttpServer    *server.ShipmentDashHttpServer
	DashboardRefresherService *services.DashboardRefresherService
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	// Initialize Redis Client internals
	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.REDIS_DB_ADDRESS,
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})

	// Initialize Redis client
	redisClient := db.NewStoreRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Redis History DAO
	redisHistoryDao := redis.NewRedisHistoryDAO(redisClient)

	// Initialize shipments feed client - mock serves a local snapshot
	var feedClient sheets.ShipmentsFeedAPI
	if env != "prod" {
		feedClient = sheets.NewSheetsFeedClientMock()
		log.Printf("Using mock shipments feed client")
	} else {
		log.Printf("Using prod shipments feed client")
		httpClient := api.NewHTTPClient("")
		feedClient = sheets.NewSheetsFeedClient(httpClient, config.SHIPMENT_FEED_CSV_URL)
	}

	// Initialize service layer with Redis client dependency
	dashboardService := services.NewDashboardService(redisHistoryDao)

	// Initialize dashboard handler
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(dashboardHandler, muxRouter)

	// initialize shipment dash server
	shipmentDashHttpServer := server.NewShipmentDashHttpServer(router, muxRouter)

	dashboardRefresherService := services.NewDashboardRefresherService(redisHistoryDao, feedClient)

	return &Container{
		RedisClient:               redisClient,
		RedisHistoryDao:           redisHistoryDao,
		ShipmentsFeedAPI:          feedClient,
		DashboardService:          dashboardService,
		DashboardHandler:          dashboardHandler,
		MuxRouter:                 muxRouter,
		Router:                    router,
		ShipmentDashHttpServer:    shipmentDashHttpServer,
		DashboardRefresherService: dashboardRefresherService,
	}
}
