package bridge

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/unkn0wn-root/treecodec"
)

// ToCBOR renders a tree as CBOR bytes using RFC 8949 Core Deterministic
// encoding, so identical trees produce byte-identical output.
func ToCBOR(v *treecodec.Value) ([]byte, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("bridge: cbor enc mode: %w", err)
	}
	return enc.Marshal(toGo(v))
}

// FromCBOR parses CBOR bytes into a tree. Map keys must be strings.
func FromCBOR(data []byte) (*treecodec.Value, error) {
	opts := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}
	dec, err := opts.DecMode()
	if err != nil {
		return nil, fmt.Errorf("bridge: cbor dec mode: %w", err)
	}
	var raw any
	if err := dec.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("bridge: cbor parse: %w", err)
	}
	return fromGo(raw)
}
