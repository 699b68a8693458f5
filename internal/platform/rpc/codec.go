package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// Name is the codec name used as the gRPC content-subtype for all backend
// calls. The backends speak plain JSON messages over gRPC framing, so no
// generated protobuf code exists on either side.
const Name = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
