package booking

import (
	"strings"
	"time"
)

// NewBookingID builds a booking identifier from the submission time and the
// client's full name, e.g. "booking_20251201140000_Jane_Doe". The timestamp
// component keeps ids sortable by submission time.
//
// Known weakness: two submissions in the same second with the same name
// produce the same id. The repository surfaces this as ErrAlreadyExists
// instead of silently overwriting the earlier record.
func NewBookingID(t time.Time, fullName string) string {
	var b strings.Builder
	b.WriteString("booking_")
	b.WriteString(t.Format("20060102150405"))
	b.WriteString("_")
	b.WriteString(sanitizeName(fullName))
	return b.String()
}

// sanitizeName collapses whitespace runs to a single underscore and drops
// every character that is unsafe in a file name. Ids become file names in
// the file-backed store, so path metacharacters must not survive.
func sanitizeName(name string) string {
	fields := strings.Fields(name)
	joined := strings.Join(fields, "_")

	var b strings.Builder
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
