// Package batch defines the payload that travels from a Format to a Medium.
package batch

// Encoding distinguishes text formats (newline-delimited, human readable)
// from binary formats (Parquet, Avro, msgpack, gzip).
type Encoding int

const (
	// Text encodings are safe to write to a line-oriented sink as-is.
	Text Encoding = iota
	// Binary encodings are opaque byte payloads.
	Binary
)

// Batch is a single formatted payload representing exactly Count records
// from one producer instance. It is immutable once constructed.
type Batch struct {
	Payload  []byte
	Count    int
	Encoding Encoding
}

// Empty reports whether the batch carries zero records. A Format must
// accept size=0 and return an Empty batch that every Medium treats as a
// no-op.
func (b Batch) Empty() bool {
	return b.Count == 0
}
