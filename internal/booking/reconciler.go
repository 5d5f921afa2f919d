package booking

import (
    "context"
    "log"
    "time"

    "github.com/go-co-op/gocron/v2"
)

// Reconciler runs the availability reconciliation on a fixed interval.
// The job is deliberately fire-and-forget: failures are logged and
// swallowed so the scheduling loop survives, and because Reconcile is
// idempotent the next run simply retries.  The same entry point is
// invocable manually from cmd/reconcile.
type Reconciler struct {
    engine    *Engine
    interval  time.Duration
    scheduler gocron.Scheduler
}

// NewReconciler constructs a Reconciler around the engine.  interval
// must be positive; the default is one hour.
func NewReconciler(engine *Engine, interval time.Duration) *Reconciler {
    if engine == nil {
        panic("nil engine passed to NewReconciler")
    }
    if interval <= 0 {
        interval = time.Hour
    }
    return &Reconciler{engine: engine, interval: interval}
}

// RunOnce executes a single reconciliation pass and logs the outcome.
// Errors are logged, never returned upward; the caller decides nothing
// based on them.
func (r *Reconciler) RunOnce() {
    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    defer cancel()
    freed, err := r.engine.Reconcile(ctx)
    if err != nil {
        log.Printf("reconciler: run failed: %v", err)
        return
    }
    if freed > 0 {
        log.Printf("reconciler: restored availability for %d room(s)", freed)
    }
}

// Start launches the interval job on a background scheduler.  It returns
// an error only when the scheduler itself cannot be built; job failures
// never propagate.
func (r *Reconciler) Start() error {
    s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
    if err != nil {
        return err
    }
    if _, err := s.NewJob(
        gocron.DurationJob(r.interval),
        gocron.NewTask(r.RunOnce),
    ); err != nil {
        return err
    }
    s.Start()
    r.scheduler = s
    log.Printf("reconciler: scheduled every %s", r.interval)
    return nil
}

// Stop shuts the scheduler down, waiting for an in-flight run to finish.
func (r *Reconciler) Stop() {
    if r.scheduler != nil {
        _ = r.scheduler.Shutdown()
    }
}
