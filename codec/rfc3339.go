package codec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reoring/gorecord/internal/coerce"
)

// ErrInvalidDate is returned by the Date codec for input it cannot read.
var ErrInvalidDate = errors.New("codec: invalid date")

// Date returns a Codec that converts between strings and time.Time. Decoding
// accepts everything a date field accepts; encoding always produces RFC3339
// in UTC, which decodes back to the same instant.
func Date() Codec[string, time.Time] { return dateCodec{} }

// DateLayout is Date with layout tried first when decoding.
func DateLayout(layout string) Codec[string, time.Time] { return dateCodec{layout: layout} }

type dateCodec struct{ layout string }

func (c dateCodec) Decode(ctx context.Context, a string) (time.Time, error) {
	t, ok := coerce.Time(a, c.layout)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, a)
	}
	return t, nil
}

func (c dateCodec) Encode(ctx context.Context, b time.Time) (string, error) {
	if b.IsZero() {
		return "", fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	return coerce.FormatTime(b), nil
}
