package snapshot

// Codec converts table values to and from the bytes stored in a snapshot.
// Unmarshal must not keep a reference to its input.
type Codec[V any] interface {
	Marshal(val V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// BytesCodec stores byte slice values as they are
type BytesCodec struct{}

func (BytesCodec) Marshal(val []byte) ([]byte, error) {
	return val, nil
}

func (BytesCodec) Unmarshal(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// StringCodec stores string values as their utf8 bytes
type StringCodec struct{}

func (StringCodec) Marshal(val string) ([]byte, error) {
	return []byte(val), nil
}

func (StringCodec) Unmarshal(data []byte) (string, error) {
	return string(data), nil
}
