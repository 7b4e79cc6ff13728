package internal

import (
	"bytes"
	"encoding/gob"

	"google.golang.org/grpc/encoding"
)

// CodecName is negotiated as a gRPC content-subtype: clients dial with
// grpc.CallContentSubtype(CodecName) and the server resolves the same
// codec for decoding, per google.golang.org/grpc/encoding's extension
// point. No .proto file or protoc run is involved; the wire format is
// plain gob over these plain structs instead.
const CodecName = "gob"

func init() {
	encoding.RegisterCodec(gobCodec{})
}

type gobCodec struct{}

func (gobCodec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func (gobCodec) Name() string {
	return CodecName
}
