package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"campus-hub/agora/internal/api"
	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/db"
	"campus-hub/agora/internal/logging"
	"campus-hub/agora/internal/metrics"
	"campus-hub/agora/internal/models/entities"
	"campus-hub/agora/internal/routes"
	"campus-hub/agora/internal/workers"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Agora starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	if err := db.InitPostgres(); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("Failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	host := os.Getenv("PG_HOST")
	port := os.Getenv("PG_PORT")
	user := os.Getenv("PG_USER")
	dbname := os.Getenv("PG_DB")
	password := os.Getenv("PG_PASSWORD")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)

	orm, err := db.InitPostgresORM(dsn)
	if err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("Failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	if err := orm.AutoMigrate(
		&entities.Account{},
		&entities.Project{},
		&entities.ScheduledEvent{},
		&entities.CommunityEvent{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Shared cache: Redis when reachable, in-process fallback otherwise.
	// Every cache consumer degrades on miss, so the fallback only costs
	// cross-process sharing, not correctness.
	var cacheStore common.Cache
	redisCache, err := common.NewRedisCache()
	if err != nil {
		logging.Warn("Redis unreachable, using in-memory cache", "error", err.Error())
		cacheStore = common.NewMemoryCache()
	} else {
		logging.Info("Connected to Redis")
		cacheStore = redisCache
	}

	reg := metrics.NewRegistry()
	deps := api.InitDependencies(cacheStore, reg)

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, upSince)

	// Warm presence snapshots for the configured campuses
	if campuses := os.Getenv("PRESENCE_CAMPUSES"); campuses != "" {
		var campusIDs []int
		for _, raw := range strings.Split(campuses, ",") {
			id, err := deps.Services.Sync.ResolveCampusID(context.Background(), raw)
			if err != nil {
				logging.Warn("skipping unresolvable campus", "campus", raw, "error", err.Error())
				continue
			}
			campusIDs = append(campusIDs, id)
		}

		worker := workers.NewPresenceWarmWorker(deps.Services.Presence, campusIDs)
		go worker.Start(context.Background())
		logging.Info("Presence warm worker started", "campuses", campusIDs)
	}

	// Metrics endpoint lives outside the Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	logging.Info("Server starting", "port", 8080, "environment", appEnv)
	log.Fatal(http.ListenAndServe(":8080", mux))
}
