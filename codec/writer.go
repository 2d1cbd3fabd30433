package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// ErrWriterClosed is returned by writes after Close.
var ErrWriterClosed = errors.New("codec: writer closed")

// Record is one reported seed.
type Record struct {
	Seed    string `json:"seed"`
	Score   int    `json:"score"`
	Tallies []int  `json:"tallies"`
}

// ResultWriter streams records. Implementations are not safe for
// concurrent use.
type ResultWriter interface {
	Write(r Record) error
	// Flush pushes buffered rows to the underlying writer. Compressed
	// frames are only complete after Close.
	Flush() error
	// Close flushes and ends the compression frame. It does not close the
	// destination.
	Close() error
}

// stream is the buffered, optionally compressed destination shared by the
// writers.
type stream struct {
	bw     *bufio.Writer
	frame  io.WriteCloser
	closed bool
}

func newStream(w io.Writer, optFns []Option) (*stream, error) {
	var o Options
	for _, fn := range optFns {
		fn(&o)
	}
	frame, err := compress(w, o)
	if err != nil {
		return nil, err
	}
	return &stream{bw: bufio.NewWriter(frame), frame: frame}, nil
}

func (s *stream) Flush() error {
	if s.closed {
		return ErrWriterClosed
	}
	return s.bw.Flush()
}

func (s *stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.bw.Flush(); err != nil {
		_ = s.frame.Close()
		return err
	}
	return s.frame.Close()
}

// CSVWriter writes the CSV result format: a quoted header line
// "Seed","TotalScore",<labels...> followed by one unquoted row
// seed,score,t0,t1,... per record.
type CSVWriter struct {
	*stream
	width int
	line  []byte
}

// NewCSVWriter writes the header for labels and returns the writer.
func NewCSVWriter(w io.Writer, labels []string, opts ...Option) (*CSVWriter, error) {
	s, err := newStream(w, opts)
	if err != nil {
		return nil, err
	}
	cw := &CSVWriter{stream: s, width: len(labels)}

	cw.line = appendQuoted(cw.line[:0], "Seed")
	cw.line = append(cw.line, ',')
	cw.line = appendQuoted(cw.line, "TotalScore")
	for _, l := range labels {
		cw.line = append(cw.line, ',')
		cw.line = appendQuoted(cw.line, l)
	}
	cw.line = append(cw.line, '\n')
	if _, err := cw.bw.Write(cw.line); err != nil {
		return nil, err
	}
	return cw, nil
}

// Write appends one row. The number of tallies must match the header.
func (cw *CSVWriter) Write(r Record) error {
	if cw.closed {
		return ErrWriterClosed
	}
	if len(r.Tallies) != cw.width {
		return fmt.Errorf("codec: %d tallies for %d columns", len(r.Tallies), cw.width)
	}
	cw.line = append(cw.line[:0], r.Seed...)
	cw.line = append(cw.line, ',')
	cw.line = strconv.AppendInt(cw.line, int64(r.Score), 10)
	for _, t := range r.Tallies {
		cw.line = append(cw.line, ',')
		cw.line = strconv.AppendInt(cw.line, int64(t), 10)
	}
	cw.line = append(cw.line, '\n')
	_, err := cw.bw.Write(cw.line)
	return err
}

func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			dst = append(dst, '"')
		}
		dst = append(dst, s[i])
	}
	return append(dst, '"')
}

// JSONLinesWriter writes one JSON object per line. The first line holds
// the labels ({"labels":[...]}), every following line a Record.
type JSONLinesWriter struct {
	*stream
	enc   *gojson.Encoder
	width int
}

type labelsLine struct {
	Labels []string `json:"labels"`
}

// NewJSONLinesWriter writes the labels line and returns the writer.
func NewJSONLinesWriter(w io.Writer, labels []string, opts ...Option) (*JSONLinesWriter, error) {
	s, err := newStream(w, opts)
	if err != nil {
		return nil, err
	}
	jw := &JSONLinesWriter{stream: s, enc: gojson.NewEncoder(s.bw), width: len(labels)}
	if labels == nil {
		labels = []string{}
	}
	if err := jw.enc.Encode(labelsLine{Labels: labels}); err != nil {
		return nil, err
	}
	return jw, nil
}

// Write appends one record line.
func (jw *JSONLinesWriter) Write(r Record) error {
	if jw.closed {
		return ErrWriterClosed
	}
	if len(r.Tallies) != jw.width {
		return fmt.Errorf("codec: %d tallies for %d labels", len(r.Tallies), jw.width)
	}
	if r.Tallies == nil {
		r.Tallies = []int{}
	}
	return jw.enc.Encode(r)
}

// NewResultWriter returns the writer for format "csv" or "jsonl".
func NewResultWriter(format string, w io.Writer, labels []string, opts ...Option) (ResultWriter, error) {
	switch format {
	case "", "csv":
		return NewCSVWriter(w, labels, opts...)
	case "jsonl", "ndjson":
		return NewJSONLinesWriter(w, labels, opts...)
	}
	return nil, fmt.Errorf("codec: unknown result format %q", format)
}
