package main // Manual availability reconciliation entry point

import (
    "context"
    "log"
    "time"

    "github.com/joho/godotenv"

    "github.com/iliyamo/property-booking/internal/booking"
    "github.com/iliyamo/property-booking/internal/config"
    "github.com/iliyamo/property-booking/internal/database"
    "github.com/iliyamo/property-booking/internal/repository"
)

// main runs one reconciliation pass and exits.  Operators use this when a
// sweep is needed right now instead of at the next scheduled tick; it is
// the same UPDATE the in-process job runs, so the two can never disagree.
func main() {
    _ = godotenv.Load()

    cfg := config.Load()
    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    engine := booking.NewEngine(db,
        repository.NewRoomRepo(db),
        repository.NewBookingRepo(db),
        repository.NewPaymentRepo(db),
        repository.NewPropertyRepo(db),
    )

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()

    freed, err := engine.Reconcile(ctx)
    if err != nil {
        log.Fatalf("reconcile: %v", err)
    }
    log.Printf("reconcile: freed %d room(s)", freed)
}
