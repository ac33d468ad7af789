package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"freight/cmd"
	freighthttp "freight/internal/adapters/in/http"
	pgadapter "freight/internal/adapters/out/postgres"
	"freight/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultStaleOrderTTLHours = 24

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)
	if err := pgadapter.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.CreateCancelStaleOrdersCommandHandler(),
		configs.StaleOrderTTL,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:      envOrDefault("HTTP_PORT", "8080"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        envOrDefault("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     envOrDefault("DB_SSLMODE", "disable"),
		StaleOrderTTL: staleOrderTTL(),
		AdminUserIDs:  splitNonEmpty(os.Getenv("ADMIN_USER_IDS")),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func staleOrderTTL() time.Duration {
	raw := os.Getenv("STALE_ORDER_TTL_HOURS")
	if raw == "" {
		return defaultStaleOrderTTLHours * time.Hour
	}

	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		log.Fatalf("Invalid STALE_ORDER_TTL_HOURS: %q", raw)
	}

	return time.Duration(hours) * time.Hour
}

func splitNonEmpty(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := freighthttp.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderDraftCommandHandler(),
		app.CreatePostOrderCommandHandler(),
		app.CreatePlaceBidCommandHandler(),
		app.CreateAcceptBidCommandHandler(),
		app.CreateWithdrawBidCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateSubmitProofCommandHandler(),
		app.CreateConfirmDeliveryCommandHandler(),
		app.CreateRateDeliveryCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListOrdersQueryHandler(),
		app.CreateListBidsQueryHandler(),
		app.IdentityProvider(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
