// README: Entry point; loads config, wires stores and services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voyage/internal/agent"
	"voyage/internal/config"
	httptransport "voyage/internal/http"
	"voyage/internal/infra"
	"voyage/internal/modules/orchestrator"
	"voyage/internal/modules/report"
	"voyage/internal/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	registry, closeAgents, err := agent.BuildRegistry(ctx, cfg.Agents)
	if err != nil {
		log.Fatalf("agent registry: %v", err)
	}
	defer closeAgents()

	tripStore := trip.NewStore(dbPool)
	reportStore := report.NewStore(dbPool)
	jobStore := orchestrator.NewRedisJobStore(redisClient)

	orchSvc := orchestrator.NewService(registry, reportStore, jobStore,
		time.Duration(cfg.Agents.TimeoutSeconds)*time.Second)
	reportSvc := report.NewService(reportStore, tripStore)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Trips:        tripStore,
		Orchestrator: orchSvc,
		Jobs:         jobStore,
		Reports:      reportSvc,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
