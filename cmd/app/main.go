package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"marketplace/cmd"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/restaurantrepo"
	"marketplace/internal/pubsub"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultPendingSweepMaxAge = 5 * time.Minute

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)

	root := cmd.NewCompositionRoot(gormDB, eventBufferSize(configs), logger)
	defer root.Close()

	jobManager := root.CreateJobManager(pendingSweepMaxAge(configs))
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		PendingSweepMaxAge: goDotEnvVariable("PENDING_SWEEP_MAX_AGE"),
		EventBufferSize:    goDotEnvVariable("EVENT_BUFFER_SIZE"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func pendingSweepMaxAge(configs cmd.Config) time.Duration {
	if configs.PendingSweepMaxAge == "" {
		return defaultPendingSweepMaxAge
	}

	maxAge, err := time.ParseDuration(configs.PendingSweepMaxAge)
	if err != nil || maxAge <= 0 {
		log.Fatalf("Invalid PENDING_SWEEP_MAX_AGE: %q", configs.PendingSweepMaxAge)
	}
	return maxAge
}

func eventBufferSize(configs cmd.Config) int {
	if configs.EventBufferSize == "" {
		return pubsub.DefaultBufferSize
	}

	size, err := strconv.Atoi(configs.EventBufferSize)
	if err != nil || size <= 0 {
		log.Fatalf("Invalid EVENT_BUFFER_SIZE: %q", configs.EventBufferSize)
	}
	return size
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.DishDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(root cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	root.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
