package discord

import (
	"strconv"
	"strings"
	"time"
)

// TimestampFormat is the format used by Discord's timestamps, which is
// ISO 8601.
const TimestampFormat = time.RFC3339 // same as ISO8601

// Timestamp is a JSON timestamp in Discord's payloads. The zero value
// marshals to null.
type Timestamp time.Time

var (
	_ interface {
		MarshalJSON() ([]byte, error)
		UnmarshalJSON([]byte) error
	} = (*Timestamp)(nil)
)

// NowTimestamp returns the current timestamp.
func NowTimestamp() Timestamp {
	return NewTimestamp(time.Now())
}

// NewTimestamp creates a timestamp from the given time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

func (t *Timestamp) UnmarshalJSON(v []byte) error {
	str := strings.Trim(string(v), `"`)
	if str == "null" {
		return nil
	}

	r, err := time.Parse(TimestampFormat, str)
	if err != nil {
		return err
	}

	*t = Timestamp(r)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.IsValid() {
		return []byte("null"), nil
	}

	return []byte(`"` + t.Format(TimestampFormat) + `"`), nil
}

// IsValid returns whether the timestamp is set.
func (t Timestamp) IsValid() bool {
	return !t.Time().IsZero()
}

// Format formats the timestamp with the given layout.
func (t Timestamp) Format(fmt string) string {
	return t.Time().Format(fmt)
}

// Time returns the timestamp as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// Milliseconds is a duration encoded in JSON as integer milliseconds.
type Milliseconds time.Duration

// DurationToMilliseconds converts a duration to Milliseconds.
func DurationToMilliseconds(dura time.Duration) Milliseconds {
	return Milliseconds(dura.Milliseconds())
}

func (ms Milliseconds) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(ms), 10)), nil
}

func (ms *Milliseconds) UnmarshalJSON(data []byte) error {
	i, err := strconv.ParseInt(string(data), 10, 64)
	*ms = Milliseconds(i)
	return err
}

// Duration converts the Milliseconds to a time.Duration.
func (ms Milliseconds) Duration() time.Duration {
	return time.Duration(ms) * time.Millisecond
}
