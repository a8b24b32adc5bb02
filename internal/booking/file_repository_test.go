package booking

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBooking(id string) *Booking {
	return &Booking{
		ID:        id,
		CreatedAt: time.Date(2025, 11, 30, 13, 59, 58, 0, time.UTC),
		Service:   ServiceInfo{ID: "2HSession", Name: "2 Hour Studio Session", Price: 50},
		Client:    ClientInfo{FullName: "Jane Doe", PhoneNumber: "555-123-4567"},
		Session:   SessionInfo{Date: "2025-12-01", Time: "2:00 PM", Location: "Dreamstar"},
		Project:   ProjectInfo{Description: "Need help mixing a pop track"},
		Status:    StatusPending,
	}
}

func newTestFileRepo(t *testing.T) (Repository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "bookings")
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)
	return repo, dir
}

func TestFileRepositoryCreatesDirectory(t *testing.T) {
	_, dir := newTestFileRepo(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo, dir := newTestFileRepo(t)
	ctx := context.Background()

	b := testBooking("booking_20251130135958_Jane_Doe")
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got, "read record must match written record field for field")

	// The on-disk form is pretty-printed JSON named after the id.
	data, err := os.ReadFile(filepath.Join(dir, b.ID+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"status\": \"pending\"")
}

func TestFileRepositoryPutIsIdempotent(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	b := testBooking("booking_20251130135958_Jane_Doe")
	require.NoError(t, repo.Put(ctx, b))
	require.NoError(t, repo.Put(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestFileRepositoryPutOverwrites(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	b := testBooking("booking_20251130135958_Jane_Doe")
	require.NoError(t, repo.Create(ctx, b))

	b.Status = StatusConfirmed
	b.PaymentStatus = "paid"
	b.PaymentIntentID = "pi_123"
	require.NoError(t, repo.Put(ctx, b))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Equal(t, "paid", got.PaymentStatus)
	assert.Equal(t, "pi_123", got.PaymentIntentID)
}

func TestFileRepositoryCreateRejectsDuplicateID(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	b := testBooking("booking_20251130135958_Jane_Doe")
	require.NoError(t, repo.Create(ctx, b))

	err := repo.Create(ctx, testBooking(b.ID))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestFileRepositoryGetMissing(t *testing.T) {
	repo, _ := newTestFileRepo(t)

	_, err := repo.GetByID(context.Background(), "booking_20990101000000_Nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepositoryRejectsPathEscapingIDs(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "../outside")
	assert.ErrorIs(t, err, ErrNotFound)

	bad := testBooking("../outside")
	assert.Error(t, repo.Put(ctx, bad))
}

func TestFileRepositoryListAll(t *testing.T) {
	repo, dir := newTestFileRepo(t)
	ctx := context.Background()

	const n = 5
	want := make(map[string]*Booking, n)
	for i := 0; i < n; i++ {
		b := testBooking(fmt.Sprintf("booking_2025113013595%d_Jane_Doe", i))
		require.NoError(t, repo.Create(ctx, b))
		want[b.ID] = b
	}

	// Stray files must not show up as records.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leftover.json.abc.tmp"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a record"), 0644))

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, n)

	for _, b := range got {
		assert.Equal(t, want[b.ID], b)
	}
}

func TestFileRepositoryConcurrentWritersDistinctKeys(t *testing.T) {
	repo, _ := newTestFileRepo(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b := testBooking(fmt.Sprintf("booking_20251130135958_Client_%02d", i))
			errs <- repo.Put(ctx, b)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, got, n)
}

func TestFileRepositoryConcurrentWritersSameKey(t *testing.T) {
	repo, dir := newTestFileRepo(t)
	ctx := context.Background()

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Put(ctx, testBooking("booking_20251130135958_Jane_Doe"))
		}()
	}
	wg.Wait()

	// Last writer wins with a complete, parseable record.
	got, err := repo.GetByID(ctx, "booking_20251130135958_Jane_Doe")
	require.NoError(t, err)
	assert.Equal(t, testBooking("booking_20251130135958_Jane_Doe"), got)

	// No temp files left behind once all renames finished.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file %s left behind", e.Name())
	}
}
