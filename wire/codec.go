package wire

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec backs gRPC's "proto" content-subtype with JSON marshaling.
// There is no protoc-generated code available for this service's message
// types, so the usual protobuf-wire codec has nothing to encode against;
// registering under the name "proto" makes it the default for any
// grpc.ClientConn/grpc.Server that doesn't set CallContentSubtype, so every
// message below can be a plain Go struct.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return "proto" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
