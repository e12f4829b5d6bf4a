package pool

import "sync"

const (
	// StagingBufferDefaultSize is the default capacity of a staging buffer
	// obtained from the pool. Sized for a typical compressed page run.
	StagingBufferDefaultSize = 64 * 1024

	// StagingBufferMaxThreshold is the largest buffer capacity returned to
	// the pool. Buffers that grew beyond it during a batch are dropped so a
	// single oversized chunk does not pin memory for the session lifetime.
	StagingBufferMaxThreshold = 8 * 1024 * 1024
)

// ByteBuffer is a reusable byte slice wrapper used as the per-chunk staging
// region during batch encoding. Encoded, compressed pages are appended here
// and drained to the sink in batch order.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset resets the buffer to be empty, retaining allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold n more bytes without reallocating.
//
// Small buffers grow by the default staging size to minimize reallocations;
// larger buffers grow by 25% of current capacity.
func (bb *ByteBuffer) Grow(n int) {
	curLen := len(bb.B)
	if cap(bb.B)-curLen >= n {
		return
	}

	growth := StagingBufferDefaultSize
	if cap(bb.B) > 2*StagingBufferDefaultSize {
		growth = cap(bb.B) / 4
	}
	if growth < n {
		growth = n
	}

	grown := make([]byte, curLen, cap(bb.B)+growth)
	copy(grown, bb.B)
	bb.B = grown
}

var stagingBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(StagingBufferDefaultSize)
	},
}

// GetStagingBuffer returns a reset ByteBuffer from the pool.
func GetStagingBuffer() *ByteBuffer {
	bb, _ := stagingBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutStagingBuffer returns a ByteBuffer to the pool.
// Buffers above StagingBufferMaxThreshold are dropped.
func PutStagingBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > StagingBufferMaxThreshold {
		return
	}
	stagingBufferPool.Put(bb)
}
