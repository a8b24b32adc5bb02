package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingID(t *testing.T) {
	ts := time.Date(2025, 12, 1, 14, 0, 0, 0, time.UTC)

	t.Run("combines timestamp and name", func(t *testing.T) {
		id := NewBookingID(ts, "Jane Doe")
		assert.Equal(t, "booking_20251201140000_Jane_Doe", id)
	})

	t.Run("collapses whitespace runs to a single underscore", func(t *testing.T) {
		id := NewBookingID(ts, "  Jane \t  van   Doe ")
		assert.Equal(t, "booking_20251201140000_Jane_van_Doe", id)
	})

	t.Run("drops characters unsafe in file names", func(t *testing.T) {
		id := NewBookingID(ts, "../etc/passwd J.D.")
		assert.Equal(t, "booking_20251201140000_etcpasswd_JD", id)
	})

	t.Run("distinct pairs give distinct ids", func(t *testing.T) {
		other := ts.Add(time.Second)
		assert.NotEqual(t, NewBookingID(ts, "Jane Doe"), NewBookingID(other, "Jane Doe"))
		assert.NotEqual(t, NewBookingID(ts, "Jane Doe"), NewBookingID(ts, "John Doe"))
	})

	t.Run("same second and same name collide", func(t *testing.T) {
		// Known weakness of the id scheme: the repository rejects the
		// second insert instead of overwriting the first record.
		assert.Equal(t, NewBookingID(ts, "Jane Doe"), NewBookingID(ts, "Jane Doe"))
	})
}
