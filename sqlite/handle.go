package sqlite

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/fwojciec/partcat"
)

// Handle owns the active-store location and a versioned pointer to the
// currently open database. The builder is the only writer: it stages a
// fresh store elsewhere and promotes it through Promote, so readers either
// see the previous store or the new one, never a partially-written file.
type Handle struct {
	path string
	ptr  atomic.Pointer[DB]
}

// NewHandle creates a Handle for the store at path. Call Open to attach to
// an existing store file.
func NewHandle(path string) *Handle {
	return &Handle{path: path}
}

// Open attaches to the store file if one exists. A missing file is not an
// error: the handle stays empty and reads fail with ENOTREADY until a
// build promotes a store.
func (h *Handle) Open() error {
	if _, err := os.Stat(h.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat store: %w", err)
	}

	db := NewDB(h.path)
	if err := db.Open(); err != nil {
		return err
	}
	h.ptr.Store(db)
	return nil
}

// DB returns the active database. Returns ENOTREADY if no store has been
// promoted yet.
func (h *Handle) DB() (*DB, error) {
	db := h.ptr.Load()
	if db == nil {
		return nil, partcat.Errorf(partcat.ENOTREADY, "no catalog store available; run a build first")
	}
	return db, nil
}

// Path returns the active-store path.
func (h *Handle) Path() string {
	return h.path
}

// StagingPath returns the location builds stage into before promotion.
func (h *Handle) StagingPath() string {
	return h.path + ".staging"
}

// Promote atomically replaces the active store with the staged file. The
// staged database must already be closed. Concurrent readers holding the
// previous database finish on its old descriptor; subsequent reads see the
// new store.
func (h *Handle) Promote(stagedPath string) error {
	if err := os.Rename(stagedPath, h.path); err != nil {
		return fmt.Errorf("promote staged store: %w", err)
	}

	// Drop WAL side files left behind by the previous active connection so
	// the fresh open does not try to recover another database's log. The
	// previous connection keeps working on its open descriptors.
	os.Remove(h.path + "-wal")
	os.Remove(h.path + "-shm")

	db := NewDB(h.path)
	if err := db.Open(); err != nil {
		return fmt.Errorf("open promoted store: %w", err)
	}

	if old := h.ptr.Swap(db); old != nil {
		old.Close()
	}
	return nil
}

// Close closes the active database, if any.
func (h *Handle) Close() error {
	if db := h.ptr.Swap(nil); db != nil {
		return db.Close()
	}
	return nil
}
