package state

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/justyntemme/vcparam/pkg/framework/param"
)

var (
	// ErrTruncated reports a snapshot that ended inside a record. Every
	// record before the cut has been applied; it is not fatal.
	ErrTruncated = errors.New("state: snapshot truncated")

	// ErrCorrupt reports a record that cannot be decoded at all
	ErrCorrupt = errors.New("state: corrupt snapshot")
)

// Codec reads and writes snapshots of a Store.
//
// A snapshot is a headerless stream of little-endian records
//
//	id:int32 tag:int32 payload
//
// where tag 0 carries an int32, tag 1 a float64 and tag 2 an int32 length
// followed by that many UTF-8 bytes. The stream ends at end of input.
type Codec struct {
	schema *param.Schema
	logger *slog.Logger
}

// CodecOption configures a Codec
type CodecOption func(*Codec)

// WithLogger sets the logger used to report skipped records
func WithLogger(l *slog.Logger) CodecOption {
	return func(c *Codec) {
		c.logger = l
	}
}

// NewCodec creates a codec for the given schema
func NewCodec(schema *param.Schema, opts ...CodecOption) *Codec {
	c := &Codec{
		schema: schema,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Write emits one record per entry of s, in the store's iteration order
func (c *Codec) Write(w io.Writer, s *Store) error {
	bw := bufio.NewWriter(w)
	for _, id := range s.IDs() {
		v := s.values[id]

		if err := binary.Write(bw, binary.LittleEndian, int32(id)); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(v.Kind())); err != nil {
			return err
		}

		var err error
		switch v.Kind() {
		case param.KindInt:
			i := v.AsInt()
			if i < math.MinInt32 || i > math.MaxInt32 {
				return fmt.Errorf("parameter %d: int %d does not fit a snapshot record", id, i)
			}
			err = binary.Write(bw, binary.LittleEndian, int32(i))
		case param.KindDouble:
			err = binary.Write(bw, binary.LittleEndian, v.AsDouble())
		case param.KindText:
			text := v.AsText()
			if err = binary.Write(bw, binary.LittleEndian, int32(len(text))); err == nil {
				_, err = bw.WriteString(text)
			}
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read resets s to the schema defaults and then applies every record of r
// in stream order. A stream that ends inside a record yields ErrTruncated
// with all earlier records applied. Records for undeclared ids, whose tag
// disagrees with the schema, or whose value the descriptor rejects keep
// the default.
func (c *Codec) Read(r io.Reader, s *Store) error {
	s.SetDefaultValues(c.schema)

	br := bufio.NewReader(r)
	var hdr [8]byte
	for {
		n, err := io.ReadFull(br, hdr[:])
		if err == io.EOF && n == 0 {
			return nil
		}
		if err != nil {
			return truncated(err)
		}
		id := param.ID(binary.LittleEndian.Uint32(hdr[0:4]))
		tag := int32(binary.LittleEndian.Uint32(hdr[4:8]))

		v, err := readPayload(br, tag)
		if err != nil {
			return err
		}

		d, ok := c.schema.Find(id)
		if !ok {
			c.logger.Debug("skipping snapshot record for undeclared parameter", "id", id)
			continue
		}
		if d.Kind() != v.Kind() {
			c.logger.Warn("skipping snapshot record with mismatched type",
				"id", id,
				"name", d.Name,
				"want", d.Kind(),
				"got", v.Kind(),
			)
			continue
		}
		// Numbers are kept as written; only lists and NaN can fail here
		if _, err := d.Validate(v); err != nil {
			c.logger.Warn("skipping snapshot record outside the parameter domain",
				"id", id,
				"name", d.Name,
				"value", v,
				"error", err,
			)
			continue
		}
		s.values[id] = v
	}
}

func readPayload(r io.Reader, tag int32) (param.Value, error) {
	var buf [8]byte
	switch tag {
	case int32(param.KindInt):
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return param.Value{}, truncated(err)
		}
		return param.Int(int(int32(binary.LittleEndian.Uint32(buf[:4])))), nil
	case int32(param.KindDouble):
		if _, err := io.ReadFull(r, buf[:8]); err != nil {
			return param.Value{}, truncated(err)
		}
		return param.Double(math.Float64frombits(binary.LittleEndian.Uint64(buf[:8]))), nil
	case int32(param.KindText):
		if _, err := io.ReadFull(r, buf[:4]); err != nil {
			return param.Value{}, truncated(err)
		}
		size := int32(binary.LittleEndian.Uint32(buf[:4]))
		if size < 0 {
			return param.Value{}, fmt.Errorf("%w: negative text length %d", ErrCorrupt, size)
		}
		// Copy rather than preallocate so a bogus length cannot exhaust memory
		var text bytes.Buffer
		if n, err := io.CopyN(&text, r, int64(size)); err != nil {
			if err == io.EOF && n < int64(size) {
				return param.Value{}, ErrTruncated
			}
			return param.Value{}, err
		}
		return param.Text(text.String()), nil
	default:
		return param.Value{}, fmt.Errorf("%w: unknown type tag %d", ErrCorrupt, tag)
	}
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
