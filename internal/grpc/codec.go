package server

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype the feed stats messages travel under
// ("application/grpc+json"). The payload is the same JSON the REST API serves.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return codecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
