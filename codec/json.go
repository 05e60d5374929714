package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	j "github.com/goccy/go-json"

	gorecord "github.com/reoring/gorecord"
)

var (
	// ErrTypeMismatch is returned when a record of an unrelated type is encoded.
	ErrTypeMismatch = errors.New("codec: record type mismatch")
	// ErrTrailingData is returned when input continues after the JSON object.
	ErrTrailingData = errors.New("codec: unexpected data after JSON object")
)

// JSON returns a Codec between JSON objects and records of rt.
//
// Encode writes every field of rt in schema order; absent values become null
// and dates are RFC3339 in UTC. Decode reads a JSON object (numbers are kept as
// json.Number until coerced) and constructs a clean record; keys that name no
// field are ignored.
func JSON(rt *gorecord.RecordType) Codec[[]byte, *gorecord.Record] {
	return &jsonCodec{rt: rt, date: Date()}
}

type jsonCodec struct {
	rt   *gorecord.RecordType
	date Codec[string, time.Time]
}

func (c *jsonCodec) Decode(ctx context.Context, a []byte) (*gorecord.Record, error) {
	dec := j.NewDecoder(bytes.NewReader(a))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", c.rt.Name(), err)
	}
	if data == nil {
		return nil, fmt.Errorf("codec: decode %s: expected a JSON object", c.rt.Name())
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("codec: decode %s: %w", c.rt.Name(), ErrTrailingData)
	}
	return gorecord.New(c.rt, data), nil
}

func (c *jsonCodec) Encode(ctx context.Context, b *gorecord.Record) ([]byte, error) {
	if b == nil || !b.Type().IsA(c.rt.Name()) {
		return nil, ErrTypeMismatch
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range b.Type().Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := j.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		v, _ := b.Get(f.Name)
		if t, ok := v.(time.Time); ok {
			s, err := c.date.Encode(ctx, t)
			if err != nil {
				return nil, fmt.Errorf("codec: field %s: %w", f.Name, err)
			}
			v = s
		}
		raw, err := j.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: field %s: %w", f.Name, err)
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
