package sql

import (
	"context"
	"log/slog"
	"time"

	"github.com/syssam/ancestry/dialect"
)

// DebugDriver wraps a dialect.Driver and logs every statement it runs.
// Statements taking longer than the slow threshold are logged at warn level.
type DebugDriver struct {
	dialect.Driver
	log           *slog.Logger
	slowThreshold time.Duration
}

// DebugOption configures the DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithLogger sets the logger used by the driver.
func DebugWithLogger(l *slog.Logger) DebugOption {
	return func(d *DebugDriver) {
		d.log = l
	}
}

// DebugWithSlowThreshold sets the threshold for slow query detection.
// A zero threshold disables slow query warnings. Default is 100ms.
func DebugWithSlowThreshold(t time.Duration) DebugOption {
	return func(d *DebugDriver) {
		d.slowThreshold = t
	}
}

// NewDebugDriver wraps a Driver with debug logging.
//
// Example:
//
//	drv, _ := sql.Open(dialect.SQLite, dsn)
//	rows, err := q.All(ctx, sql.NewDebugDriver(drv, sql.DebugWithLogger(logger)))
func NewDebugDriver(drv dialect.Driver, opts ...DebugOption) *DebugDriver {
	d := &DebugDriver{
		Driver:        drv,
		log:           slog.Default(),
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Query executes a query and logs it.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, "query", query, args, start, err)
	return err
}

// Exec executes a statement and logs it.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, "exec", query, args, start, err)
	return err
}

func (d *DebugDriver) record(ctx context.Context, op, query string, args any, start time.Time, err error) {
	duration := time.Since(start)
	attrs := []any{"op", op, "query", query, "args", args, "duration", duration}
	switch {
	case err != nil:
		d.log.ErrorContext(ctx, "statement failed", append(attrs, "error", err)...)
	case d.slowThreshold > 0 && duration > d.slowThreshold:
		d.log.WarnContext(ctx, "slow query detected", attrs...)
	default:
		d.log.DebugContext(ctx, "statement", attrs...)
	}
}

var _ dialect.Driver = (*DebugDriver)(nil)
