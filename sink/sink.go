// Package sink provides the append-only byte sink consumed by the writer.
//
// The writer never inspects sink internals. It relies on exactly two
// properties: BytesWritten reports the count of bytes already appended (used
// to compute absolute page offsets), and appended byte ranges are observed
// in call order.
package sink

import (
	"bufio"
	"bytes"
	"os"
)

// Sink is an append-only byte destination.
//
// Implementations are not required to be safe for concurrent use; a writer
// session owns its sink exclusively.
type Sink interface {
	// Write appends p to the sink.
	Write(p []byte) (int, error)
	// BytesWritten returns the count of bytes appended so far.
	BytesWritten() int64
	// Flush forces buffered bytes to the underlying destination.
	Flush() error
	// Close flushes and releases the sink.
	Close() error
}

// BufferSink collects appended bytes in memory.
type BufferSink struct {
	buf bytes.Buffer
}

var _ Sink = (*BufferSink)(nil)

// NewBufferSink creates an empty in-memory sink.
func NewBufferSink() *BufferSink {
	return &BufferSink{}
}

// Write appends p to the in-memory buffer.
func (s *BufferSink) Write(p []byte) (int, error) {
	return s.buf.Write(p)
}

// BytesWritten returns the count of bytes appended so far.
func (s *BufferSink) BytesWritten() int64 {
	return int64(s.buf.Len())
}

// Flush is a no-op for the in-memory sink.
func (s *BufferSink) Flush() error { return nil }

// Close is a no-op for the in-memory sink.
func (s *BufferSink) Close() error { return nil }

// Bytes returns the accumulated file contents.
func (s *BufferSink) Bytes() []byte {
	return s.buf.Bytes()
}

// FileSink appends bytes to a file through a buffered writer.
type FileSink struct {
	f *os.File
	w *bufio.Writer
	n int64
}

var _ Sink = (*FileSink)(nil)

// NewFileSink creates (or truncates) the file at path.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	return &FileSink{f: f, w: bufio.NewWriterSize(f, 1<<20)}, nil
}

// Write appends p to the file buffer.
func (s *FileSink) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.n += int64(n)

	return n, err
}

// BytesWritten returns the count of bytes appended so far, buffered bytes
// included.
func (s *FileSink) BytesWritten() int64 {
	return s.n
}

// Flush writes buffered bytes through to the file.
func (s *FileSink) Flush() error {
	return s.w.Flush()
}

// Close flushes and closes the file.
func (s *FileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}

	return s.f.Close()
}
