package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the framing of a result stream.
type Compression int

const (
	// CompressionNone writes the stream as is.
	CompressionNone Compression = iota
	// CompressionZstd frames the stream with zstd.
	CompressionZstd
	// CompressionLZ4 frames the stream with the lz4 frame format.
	CompressionLZ4
)

// ErrUnknownCompression is returned for an unsupported Compression value.
var ErrUnknownCompression = errors.New("codec: unknown compression")

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// ParseCompression parses "none", "zstd" or "lz4". The empty string is
// CompressionNone.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// Ext returns the file extension of the framing, including the dot.
func (c Compression) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// Options configures a result writer.
type Options struct {
	// Compression frames the output stream.
	Compression Compression
	// Level is the codec specific compression level; 0 picks the default.
	// For zstd it follows the zstd command line levels (1-22), for lz4 it
	// is 1-9.
	Level int
}

// Option configures a result writer.
type Option func(*Options)

// WithCompression frames the output with c.
func WithCompression(c Compression) Option {
	return func(o *Options) {
		o.Compression = c
	}
}

// WithLevel sets the compression level.
func WithLevel(level int) Option {
	return func(o *Options) {
		o.Level = level
	}
}

// nopCloser closes nothing; the caller owns the destination.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// compress wraps w with the configured framing. Closing the returned
// writer flushes the frame but never closes w.
func compress(w io.Writer, o Options) (io.WriteCloser, error) {
	switch o.Compression {
	case CompressionNone:
		return nopCloser{w}, nil
	case CompressionZstd:
		var opts []zstd.EOption
		if o.Level > 0 {
			opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(o.Level)))
		}
		enc, err := zstd.NewWriter(w, opts...)
		if err != nil {
			return nil, fmt.Errorf("codec: zstd writer: %w", err)
		}
		return enc, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		if o.Level > 0 {
			if err := zw.Apply(lz4.CompressionLevelOption(lz4Level(o.Level))); err != nil {
				return nil, fmt.Errorf("codec: lz4 writer: %w", err)
			}
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, int(o.Compression))
	}
}

func lz4Level(level int) lz4.CompressionLevel {
	switch {
	case level <= 1:
		return lz4.Level1
	case level >= 9:
		return lz4.Level9
	}
	return []lz4.CompressionLevel{
		lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
		lz4.Level6, lz4.Level7, lz4.Level8,
	}[level-2]
}

// NewReader undoes the framing c on r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("codec: zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, int(c))
	}
}
