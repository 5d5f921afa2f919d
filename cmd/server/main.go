package main // Entry point package

import (
    "log"  // Logging library
    "time" // Reconciliation interval arithmetic

    "github.com/joho/godotenv"    // .env loader for local development
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/property-booking/internal/booking"    // Availability engine + reconciler
    "github.com/iliyamo/property-booking/internal/config"     // Internal config loader
    "github.com/iliyamo/property-booking/internal/database"   // MySQL connection pool
    "github.com/iliyamo/property-booking/internal/handler"    // HTTP handlers
    "github.com/iliyamo/property-booking/internal/middleware" // Rate limiting + response cache
    "github.com/iliyamo/property-booking/internal/queue"      // Booking event consumer
    "github.com/iliyamo/property-booking/internal/repository" // Data access layer
    "github.com/iliyamo/property-booking/internal/router"     // Route registration
)

func main() {
    // Load .env if present; real deployments set env vars directly.
    _ = godotenv.Load()

    cfg := config.Load() // Load environment config

    // Open the MySQL pool.  Open pings with a timeout, so a dead database
    // fails fast here instead of on the first request.
    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Repositories share the single pool.
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    props := repository.NewPropertyRepo(db)
    amenities := repository.NewAmenityRepo(db)
    rooms := repository.NewRoomRepo(db)
    bookings := repository.NewBookingRepo(db)
    payments := repository.NewPaymentRepo(db)
    reviews := repository.NewReviewRepo(db)

    // The engine owns every transactional mutation of rooms, bookings and
    // payments.  Handlers and the reconciler are thin callers.
    engine := booking.NewEngine(db, rooms, bookings, payments, props)

    e := echo.New() // Create Echo instance

    // Redis backs the distributed rate limiter and the response cache for
    // the public browse endpoints.  A nil client disables both features
    // instead of taking the API down.
    rdb := config.NewRedisClient()
    var browseCache []echo.MiddlewareFunc
    if rdb != nil {
        e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
        browseCache = append(browseCache, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    } else {
        log.Println("redis unavailable; rate limiting and response cache disabled")
    }

    auth := handler.NewAuthHandler(cfg, users, tokens)
    browse := handler.NewBrowseHandler(props, amenities, rooms, reviews)
    guest := handler.NewGuestHandler(engine, bookings)
    owner := handler.NewOwnerHandler(props)
    amenity := handler.NewAmenityHandler(amenities)
    room := handler.NewRoomHandler(rooms)
    status := handler.NewStatusHandler(engine)

    router.RegisterRoutes(e) // Health check
    router.RegisterAuth(e, auth, cfg.JWTSecret)
    router.RegisterPublic(e, browse, browseCache...)
    router.RegisterGuest(e, guest, browse, cfg.JWTSecret)
    router.RegisterOwner(e, owner, amenity, room, status, cfg.JWTSecret)

    // Hourly (by default) availability sweep.  The reconciler logs what it
    // frees and never kills the process on a failed run.
    rec := booking.NewReconciler(engine, time.Duration(cfg.ReconcileMinutes)*time.Minute)
    if err := rec.Start(); err != nil {
        log.Fatalf("reconciler: %v", err)
    }
    defer rec.Stop()

    // Consume booking events into logs/booking.log.  The consumer reconnects
    // on broker failures; a missing broker only disables the audit trail.
    go func() {
        if err := queue.StartBookingConsumer(); err != nil {
            log.Printf("queue consumer: %v", err)
        }
    }()

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
