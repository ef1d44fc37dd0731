package api

import "encoding/json"

// Codec carries the plain Go messages of this package as JSON. It is
// registered under the name "json" and replaces connect's protobuf JSON codec.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
