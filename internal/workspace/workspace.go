// Package workspace guards a directory of contact exports with an advisory
// file lock so two contactlist processes never rewrite the same files at once.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// StateDir is the directory, relative to the workspace root, holding the lock
// file and the SQLite index.
const StateDir = ".contactlist"

const defaultLockTimeout = 5 * time.Second

// Logger is an optional interface for verbose/debug logging.
type Logger interface {
	Log(msg string)
}

// Workspace is a directory of contact exports.
type Workspace struct {
	root        string
	stateDir    string
	lockPath    string
	lockTimeout time.Duration
	logger      Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLockTimeout overrides how long lock acquisition waits.
func WithLockTimeout(d time.Duration) Option {
	return func(w *Workspace) { w.lockTimeout = d }
}

// WithLogger routes lock activity through l.
func WithLogger(l Logger) Option {
	return func(w *Workspace) { w.logger = l }
}

// Open returns the Workspace rooted at dir. The state directory is created on
// demand.
func Open(dir string, opts ...Option) (*Workspace, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("workspace directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace path is not a directory: %s", dir)
	}

	stateDir := filepath.Join(dir, StateDir)
	w := &Workspace{
		root:        dir,
		stateDir:    stateDir,
		lockPath:    filepath.Join(stateDir, "lock"),
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Path resolves name against the workspace root. Absolute names are returned
// unchanged.
func (w *Workspace) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(w.root, name)
}

// Rel returns path relative to the workspace root for display, or path
// itself when it lies outside the root.
func (w *Workspace) Rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// IndexPath returns the location of the SQLite index.
func (w *Workspace) IndexPath() string {
	return filepath.Join(w.stateDir, "index.db")
}

// EnsureStateDir creates the state directory if it does not exist.
func (w *Workspace) EnsureStateDir() error {
	if err := os.MkdirAll(w.stateDir, 0755); err != nil {
		return fmt.Errorf("could not create %s/ directory: %w", StateDir, err)
	}
	return nil
}

func (w *Workspace) log(msg string) {
	if w.logger != nil {
		w.logger.Log(msg)
	}
}

// Exclusive runs fn while holding the exclusive lock. Used by commands that
// rewrite files.
func (w *Workspace) Exclusive(fn func() error) error {
	return w.withLock("exclusive", func(fl *flock.Flock, ctx context.Context) (bool, error) {
		return fl.TryLockContext(ctx, 10*time.Millisecond)
	}, fn)
}

// Shared runs fn while holding a shared lock. Used by read-only commands.
func (w *Workspace) Shared(fn func() error) error {
	return w.withLock("shared", func(fl *flock.Flock, ctx context.Context) (bool, error) {
		return fl.TryRLockContext(ctx, 10*time.Millisecond)
	}, fn)
}

func (w *Workspace) withLock(kind string, acquire func(*flock.Flock, context.Context) (bool, error), fn func() error) error {
	if err := w.EnsureStateDir(); err != nil {
		return err
	}
	fl := flock.New(w.lockPath)

	w.log(fmt.Sprintf("lock: acquiring %s lock", kind))
	ctx, cancel := context.WithTimeout(context.Background(), w.lockTimeout)
	defer cancel()

	locked, err := acquire(fl, ctx)
	if err != nil || !locked {
		return fmt.Errorf("could not acquire lock on %s/lock - another process may be using contactlist", StateDir)
	}
	w.log(fmt.Sprintf("lock: %s lock acquired", kind))
	defer func() {
		fl.Unlock()
		w.log(fmt.Sprintf("lock: %s lock released", kind))
	}()

	return fn()
}
