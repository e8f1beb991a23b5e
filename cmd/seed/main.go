package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/booking-api/internal/config"
	"github.com/jwalitptl/booking-api/internal/repository/postgres"
)

const (
	doctorCount   = 25
	slotsPerDay   = 8
	scheduleDays  = 14
	firstSlotHour = 9
)

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

var departments = []string{
	"Outpatient",
	"Surgery",
	"Diagnostics",
	"Rehabilitation",
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	gofakeit.Seed(time.Now().UnixNano())

	ctx := context.Background()
	doctorIDs, err := seedDoctors(ctx, db, doctorCount)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed doctors")
	}
	if err := seedSchedules(ctx, db, doctorIDs); err != nil {
		log.Fatal().Err(err).Msg("failed to seed schedules")
	}

	log.Info().Msg("seed complete")
}

func seedDoctors(ctx context.Context, db *sqlx.DB, count int) ([]uuid.UUID, error) {
	log.Info().Int("count", count).Msg("seeding doctors")

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO doctors (id, name, specialty, department, created_at)
			VALUES ($1, $2, $3, $4, now())
		`, id, "Dr. "+gofakeit.Name(),
			specialties[gofakeit.Number(0, len(specialties)-1)],
			departments[gofakeit.Number(0, len(departments)-1)])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

// seedSchedules gives every doctor hourly slots over the next scheduleDays
// weekdays, starting tomorrow.
func seedSchedules(ctx context.Context, db *sqlx.DB, doctorIDs []uuid.UUID) error {
	log.Info().Int("doctors", len(doctorIDs)).Msg("seeding schedules")

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	day := time.Now().AddDate(0, 0, 1)
	seeded := 0
	for d := 0; d < scheduleDays; day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		d++

		for _, doctorID := range doctorIDs {
			for slot := 0; slot < slotsPerDay; slot++ {
				start := fmt.Sprintf("%02d:00", firstSlotHour+slot)
				end := fmt.Sprintf("%02d:00", firstSlotHour+slot+1)
				_, err := tx.ExecContext(ctx, `
					INSERT INTO schedules (id, doctor_id, date, start_time, end_time, available, created_at)
					VALUES ($1, $2, $3, $4, $5, true, now())
				`, uuid.New(), doctorID, day.Format("2006-01-02"), start, end)
				if err != nil {
					return err
				}
				seeded++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info().Int("slots", seeded).Msg("schedules seeded")
	return nil
}
