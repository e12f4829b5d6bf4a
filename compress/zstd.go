package compress

// ZstdCompressor provides Zstandard compression for page payloads.
//
// Zstd favors compression ratio over speed, making it the right choice when
// files are written once and stored long-term. Two implementations are
// selected by build tag:
//   - cgo_zstd: valyala/gozstd (libzstd bindings, fastest)
//   - default: klauspost/compress/zstd (pure Go, no cgo requirement)
//
// Both produce standard zstd frames, so files written with either
// implementation decompress with any conforming zstd decoder.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
