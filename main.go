package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/FACorreiaa/go-wander/internal/pkg/config"
	"github.com/FACorreiaa/go-wander/internal/server"
	"github.com/FACorreiaa/go-wander/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	if err := logger.Init(zapcore.InfoLevel, zap.String("service", "go-wander")); err != nil {
		return err
	}
	l := logger.Log
	defer l.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	otelShutdown, err := server.InitObservability("go-wander", ":9092", l)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			l.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv, err := server.New(cfg, l)
	if err != nil {
		return err
	}
	defer srv.Close()

	router := server.SetupRouter(srv, cfg, l)
	srv.SetRouter(router)

	// Not exposed publicly; reach it via an SSH tunnel.
	server.StartPprofServer(":6060", l)

	httpServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go server.GracefulShutdown(httpServer, l, done)

	l.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := httpServer.ListenAndServe(); err != nil {
		l.Error("Server error", zap.Error(err))
	}

	<-done
	l.Info("Graceful shutdown complete")

	return nil
}
