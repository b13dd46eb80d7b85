package sqlexec

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"spdb/internal/metrics"
)

// Config describes one authenticated MySQL session.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// ExecResult carries the outcome of a statement that produced no result set.
type ExecResult struct {
	LastInsertID int64
	RowsAffected int64
}

// Executor serialises statement execution on a single database session.
// The pool underneath is pinned to one connection, and the mutex is held for
// the whole of an execution including materialisation, so LastInsertID always
// belongs to the caller's own insert.
type Executor struct {
	db     *sqlx.DB
	mu     sync.Mutex
	tracer trace.Tracer
}

// Open establishes the session. The connection itself is the only retryable
// thing at this layer; statement failures later leave the session usable.
func Open(cfg Config) (*Executor, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.addr()
	mc.DBName = cfg.Database
	mc.ParseTime = false
	mc.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sqlx.Connect("mysql", mc.FormatDSN())
	if err != nil {
		metrics.DBUp.Set(0)
		return nil, err
	}
	metrics.DBUp.Set(1)
	return New(db), nil
}

// New wraps an existing handle. Used by Open and by tests.
func New(db *sqlx.DB) *Executor {
	// One session, never recycled underneath the caller.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return &Executor{db: db, tracer: otel.Tracer("spdb/sqlexec")}
}

func (c Config) addr() string {
	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.Port
	if port == 0 {
		port = 3306
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Query runs a statement that yields a result set and materialises it fully
// before returning.
func (e *Executor) Query(ctx context.Context, stmt string, args ...any) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "query", stmt)
	defer span.End()
	start := time.Now()

	rows, err := e.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		e.observe(span, "query", start, err)
		return nil, err
	}
	res, err := readResult(rows)
	e.observe(span, "query", start, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Exec runs a statement that yields no result set.
func (e *Executor) Exec(ctx context.Context, stmt string, args ...any) (ExecResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "exec", stmt)
	defer span.End()
	start := time.Now()

	res, err := e.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		e.observe(span, "exec", start, err)
		return ExecResult{}, err
	}
	// go-sql-driver reports both without an extra round-trip.
	id, err := res.LastInsertId()
	if err != nil {
		e.observe(span, "exec", start, err)
		return ExecResult{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		e.observe(span, "exec", start, err)
		return ExecResult{}, err
	}
	e.observe(span, "exec", start, nil)
	return ExecResult{LastInsertID: id, RowsAffected: affected}, nil
}

// Ping verifies the session and keeps the db_up gauge honest.
func (e *Executor) Ping(ctx context.Context) error {
	err := e.db.PingContext(ctx)
	if err != nil {
		metrics.DBUp.Set(0)
		return err
	}
	metrics.DBUp.Set(1)
	return nil
}

func (e *Executor) Close() error {
	metrics.DBUp.Set(0)
	return e.db.Close()
}

func (e *Executor) startSpan(ctx context.Context, kind, stmt string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, "spdb."+kind,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "mysql"),
			attribute.String("db.statement", stmt),
		))
}

func (e *Executor) observe(span trace.Span, kind string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	metrics.QueryTotal.WithLabelValues(kind, status).Inc()
	metrics.QueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
