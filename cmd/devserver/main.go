package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/config"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/devserver"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/logger"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/messaging"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/telemetry"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	logger.Setup(os.Stdout)

	cfg, err := config.Load(os.Getenv("INTAKE_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	var metrics *telemetry.Metrics
	if cfg.Telemetry.Enabled {
		provider, err := telemetry.InitProvider(ctx, telemetry.LoadConfig("patient-intake-devserver"))
		if err != nil {
			log.Printf("Warning: telemetry disabled: %v", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				provider.Shutdown(shutdownCtx)
			}()
			metrics, err = telemetry.InitMetrics()
			if err != nil {
				log.Printf("Warning: metrics disabled: %v", err)
			}
		}
	}

	var publisher messaging.EventPublisher
	if cfg.Messaging.RabbitMQURL != "" {
		p, err := messaging.NewPublisher(cfg.Messaging.RabbitMQURL)
		if err != nil {
			log.Printf("Warning: event publishing disabled: %v", err)
		} else {
			publisher = p
			defer p.Close()
		}
	}

	repo := devserver.NewRepository()
	handler := devserver.NewHandler(repo, publisher, logger.Logger)
	router := devserver.SetupRouter(handler, metrics)

	addr := os.Getenv("DEVSERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Printf("patient-intake devserver listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, devserver.CORSMiddleware(router)))
}
