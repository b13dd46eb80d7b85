// Package spdb is the data-access layer over the `sp` authentication
// database shared by the login and game servers. A Wrapper owns exactly one
// database session; executions on it are strictly serialised.
package spdb

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"spdb/internal/sqlexec"
)

// Wrapper is a thread-safe façade over a single MySQL session.
type Wrapper struct {
	exec *sqlexec.Executor
	log  *zap.Logger
}

// Option configures a Wrapper at construction time.
type Option func(*Wrapper)

// WithLogger attaches a logger; without it the wrapper stays silent.
func WithLogger(l *zap.Logger) Option {
	return func(w *Wrapper) {
		if l != nil {
			w.log = l
		}
	}
}

// New opens a session against the fixed `sp` database.
func New(host string, port int, user, password string, opts ...Option) (*Wrapper, error) {
	return NewWithSettings(ConnectionSettings{Host: host, Port: port, User: user, Password: password}, opts...)
}

// NewWithSettings is New with the tuple packed into a value.
func NewWithSettings(s ConnectionSettings, opts ...Option) (*Wrapper, error) {
	w := &Wrapper{log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	exec, err := sqlexec.Open(sqlexec.Config{
		Host:     s.Host,
		Port:     s.Port,
		User:     s.User,
		Password: s.Password,
		Database: DatabaseName,
	})
	if err != nil {
		addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
		w.log.Warn("unable to connect to MySQL server",
			zap.String("addr", addr), zap.Error(err))
		return nil, &ConnectError{Addr: addr, Err: err}
	}
	w.exec = exec
	return w, nil
}

// NewDefault opens a session with the process-wide settings installed via
// SetDefaultConnectionSettings.
func NewDefault(opts ...Option) (*Wrapper, error) {
	s, ok := defaultConnectionSettings()
	if !ok {
		return nil, errors.New("spdb: default connection settings not installed")
	}
	return NewWithSettings(s, opts...)
}

// newWrapper builds a Wrapper around an existing executor. Tests use it to
// substitute a scripted session.
func newWrapper(exec *sqlexec.Executor, opts ...Option) *Wrapper {
	w := &Wrapper{exec: exec, log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ping verifies the session is still usable.
func (w *Wrapper) Ping(ctx context.Context) error {
	return w.exec.Ping(ctx)
}

// Close tears the session down. The wrapper must not be used afterwards.
func (w *Wrapper) Close() error {
	return w.exec.Close()
}
