package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the wire format for entry timestamps: ISO 8601 with an explicit
// UTC offset, second precision. Both codecs and the overlay blob use it.
const Layout = "2006-01-02T15:04:05-07:00"

func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(Layout, v)
	if err != nil {
		// Hand-edited files sometimes carry bare RFC 3339 (Z suffix).
		t, err = time.Parse(time.RFC3339, v)
	}
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with the entry wire format for JSON and text.
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

func (t Timestamp) String() string {
	return t.Format(Layout)
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.Format(Layout))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(raw)
	return err
}
