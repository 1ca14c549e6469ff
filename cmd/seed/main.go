package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"roombook/internal/config"
	"roombook/internal/database"
	"roombook/internal/logging"
	"roombook/internal/models"
	"roombook/internal/schedule"

	"gopkg.in/yaml.v2"
)

// Инициализирует схему БД и опционально загружает демо-данные из configs/seed.yaml.
func main() {
	sample := flag.Bool("sample", false, "insert sample bookings for the current week")
	flag.Parse()

	if err := run(*sample); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(sample bool) error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	logger.Info().Str("db_path", cfg.Database.Path).Msg("database schema ready")

	if !sample {
		return nil
	}
	return seedSample(db)
}

func seedSample(db *database.DB) error {
	seedPath := os.Getenv("SEED_PATH")
	if seedPath == "" {
		seedPath = "configs/seed.yaml"
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seedConfig struct {
		Bookings []struct {
			Name  string `yaml:"name"`
			Phone string `yaml:"phone"`
			Day   string `yaml:"day"`
			Hour  int    `yaml:"hour"`
			Notes string `yaml:"notes"`
		} `yaml:"bookings"`
	}
	if err := yaml.Unmarshal(data, &seedConfig); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	ctx := context.Background()
	weekStart := schedule.WeekStart(time.Now())

	inserted := 0
	for _, b := range seedConfig.Bookings {
		booking := &models.Booking{
			Name:      b.Name,
			Phone:     b.Phone,
			Day:       b.Day,
			Hour:      b.Hour,
			Notes:     b.Notes,
			WeekStart: weekStart,
		}
		if err := db.InsertBooking(ctx, booking); err != nil {
			// занятые слоты пропускаем, повторный запуск не должен падать
			if errors.Is(err, database.ErrSlotTaken) {
				continue
			}
			return fmt.Errorf("insert %q %s %d: %w", b.Name, b.Day, b.Hour, err)
		}
		inserted++
	}

	log.Printf("seeded %d booking(s) for week %s", inserted, weekStart)
	return nil
}
