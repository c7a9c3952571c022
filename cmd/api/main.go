package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/snazzify/snazzpay-backend/internal/config"
	"github.com/snazzify/snazzpay-backend/internal/db"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	srv := server.New(nil, cfg)
	addr := ":" + cfg.Port

	errCh := make(chan error, 1)

	go func() {
		log.Printf("starting server on %s", addr)
		errCh <- srv.Start(addr)
	}()

	// DB comes up in the background so /healthz answers immediately;
	// repositories report not-ready until SetDB runs.
	go func() {
		conn, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect error: %v", err)
			return
		}
		srv.SetDB(conn)
		if err := conn.AutoMigrate(
			&model.Order{},
			&model.Lead{},
			&model.ShaktiCard{},
			&model.Notification{},
		); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
	}()

	if err := <-errCh; err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
