package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// fileRepository stores one pretty-printed JSON file per booking under a
// dedicated directory. Writes go to a uniquely named temp file first and are
// renamed into place, so readers never observe a partially written record.
type fileRepository struct {
	dir string
}

// NewFileRepository creates a file-backed repository rooted at dir,
// creating the directory if it does not exist.
func NewFileRepository(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bookings directory: %w", err)
	}
	return &fileRepository{dir: dir}, nil
}

// recordPath maps a booking id to its file path. Ids that could escape the
// bookings directory are rejected outright.
func (r *fileRepository) recordPath(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid booking id %q", id)
	}
	return filepath.Join(r.dir, id+".json"), nil
}

// write marshals the record and atomically replaces the file at path.
// The temp file name carries a random suffix so concurrent writers to the
// same id never collide before their rename.
func (r *fileRepository) write(path string, b *Booking) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal booking %s: %w", b.ID, err)
	}

	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write booking %s: %w", b.ID, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save booking %s: %w", b.ID, err)
	}

	return nil
}

func (r *fileRepository) Create(ctx context.Context, b *Booking) error {
	path, err := r.recordPath(b.ID)
	if err != nil {
		return err
	}

	// Stat-then-write leaves a small race window for two submissions with
	// an identical id, which is tolerable at form-submission rates.
	if _, err := os.Stat(path); err == nil {
		return ErrAlreadyExists
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check booking %s: %w", b.ID, err)
	}

	return r.write(path, b)
}

func (r *fileRepository) Put(ctx context.Context, b *Booking) error {
	path, err := r.recordPath(b.ID)
	if err != nil {
		return err
	}
	return r.write(path, b)
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	path, err := r.recordPath(id)
	if err != nil {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read booking %s: %w", id, err)
	}

	var b Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *fileRepository) ListAll(ctx context.Context) ([]*Booking, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookings directory: %w", err)
	}

	bookings := make([]*Booking, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			if os.IsNotExist(err) {
				// Raced with a concurrent rename; the record shows up on the next list.
				continue
			}
			return nil, fmt.Errorf("failed to read booking file %s: %w", entry.Name(), err)
		}

		var b Booking
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to decode booking file %s: %w", entry.Name(), err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}
