package secretstore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const lockTimeout = 100 * time.Millisecond

// diskBackend persists encrypted entries as {key}.enc files under a single
// directory. Writes are serialized across processes with an advisory lock;
// if the lock cannot be taken quickly we proceed anyway rather than hang a
// CLI invocation.
type diskBackend struct {
	dir  string
	lock *flock.Flock
	log  *zap.Logger
}

// probeDisk finds a writable storage directory, preferring the user's home
// directory and falling back to the system temp dir. Each candidate is
// verified with a real write+delete, not just a permission check. Returns
// nil when no directory is usable; the store then runs memory-only.
func probeDisk(explicit string, log *zap.Logger) *diskBackend {
	var candidates []string
	if explicit != "" {
		candidates = []string{explicit}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			candidates = append(candidates, filepath.Join(home, ".gcadm"))
		}
		candidates = append(candidates, filepath.Join(os.TempDir(), ".gcadm"))
	}

	for _, dir := range candidates {
		if !writable(dir) {
			log.Debug("storage directory not writable", zap.String("dir", dir))
			continue
		}
		return &diskBackend{
			dir:  dir,
			lock: flock.New(filepath.Join(dir, ".lock")),
			log:  log,
		}
	}
	return nil
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false
	}
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("probe"), 0600); err != nil {
		return false
	}
	return os.Remove(probe) == nil
}

func (d *diskBackend) path(key string) string {
	return filepath.Join(d.dir, key+".enc")
}

// write stores a ciphertext under key, holding the directory lock for the
// duration. Lock acquisition fails open.
func (d *diskBackend) write(key, ciphertext string) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := d.lock.TryLockContext(ctx, 10*time.Millisecond)
	if err != nil || !locked {
		d.log.Debug("proceeding without storage lock", zap.String("key", key))
	} else {
		defer d.lock.Unlock() //nolint:errcheck
	}
	return os.WriteFile(d.path(key), []byte(ciphertext), 0600)
}

func (d *diskBackend) read(key string) (string, bool) {
	data, err := os.ReadFile(d.path(key)) //nolint:gosec // G304: dir is store-owned
	if err != nil {
		return "", false
	}
	return string(data), true
}

// delete removes the entry; missing files are not an error.
func (d *diskBackend) delete(key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
