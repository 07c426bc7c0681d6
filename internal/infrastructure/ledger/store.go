// Package ledger persists answer ledger snapshots as a JSON file shared by
// concurrent runs.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"easyapply/internal/application/port/output"
	"easyapply/internal/application/service"
	"easyapply/internal/domain/entity"

	"github.com/gofrs/flock"
)

var _ output.LedgerStorePort = (*FileStore)(nil)

const lockRetry = 50 * time.Millisecond

type FileStore struct {
	path   string
	logger output.LoggerPort
}

func NewFileStore(path string, logger output.LoggerPort) *FileStore {
	return &FileStore{path: path, logger: logger.Named("ledger")}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted snapshot. A missing file is an empty ledger.
func (s *FileStore) Load(ctx context.Context) (entity.LedgerSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return entity.LedgerSnapshot{}, err
	}
	return s.read()
}

// Merge unions snap with the persisted ledger under an exclusive file lock
// and atomically replaces the file. It returns what was written.
func (s *FileStore) Merge(ctx context.Context, snap entity.LedgerSnapshot) (entity.LedgerSnapshot, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return entity.LedgerSnapshot{}, fmt.Errorf("create ledger dir: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return entity.LedgerSnapshot{}, fmt.Errorf("lock ledger: %w", err)
	}
	if !locked {
		return entity.LedgerSnapshot{}, fmt.Errorf("lock ledger: %s is held by another process", s.path)
	}
	defer func() { _ = lock.Unlock() }()

	existing, err := s.read()
	if err != nil {
		var syntax *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntax) && !errors.As(err, &typeErr) {
			return entity.LedgerSnapshot{}, err
		}
		bak := s.path + ".bak"
		s.logger.Warn("Ledger file is corrupt, starting over", "path", s.path, "backup", bak, "error", err)
		_ = os.Rename(s.path, bak)
		existing = entity.LedgerSnapshot{}
	}

	merged := service.MergeSnapshots(existing, snap)
	if err := s.write(merged); err != nil {
		return entity.LedgerSnapshot{}, err
	}
	return merged, nil
}

func (s *FileStore) read() (entity.LedgerSnapshot, error) {
	var snap entity.LedgerSnapshot
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return snap, nil
	}
	if err != nil {
		return snap, fmt.Errorf("read ledger: %w", err)
	}
	if len(b) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, fmt.Errorf("decode ledger: %w", err)
	}
	return service.MergeSnapshots(snap), nil
}

func (s *FileStore) write(snap entity.LedgerSnapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}
