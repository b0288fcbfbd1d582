// migrator применяет SQL-миграции без запуска сервера:
//
//	go run ./cmd/migrator [up|down|status]
package main

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"internship_backend/internal/config"
	"internship_backend/internal/logger"
	"internship_backend/migrations"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer db.Close()

	if err := run(db, command); err != nil {
		logger.Error("Migration failed", "command", command, "error", err.Error())
		db.Close()
		os.Exit(1)
	}
	logger.Info("Migration completed", "command", command)
}

func run(db *sql.DB, command string) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}

	switch command {
	case "up":
		return migrations.Up(db)
	case "down":
		return migrations.Down(db)
	case "status":
		return migrations.Status(db)
	default:
		return fmt.Errorf("unknown command %q, expected up, down or status", command)
	}
}
