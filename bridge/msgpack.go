package bridge

import (
	"fmt"

	"github.com/unkn0wn-root/treecodec"
	"github.com/vmihailenco/msgpack/v5"
)

// ToMsgpack renders a tree as msgpack bytes.
func ToMsgpack(v *treecodec.Value) ([]byte, error) {
	return msgpack.Marshal(toGo(v))
}

// FromMsgpack parses msgpack bytes into a tree. Map keys must be strings.
func FromMsgpack(data []byte) (*treecodec.Value, error) {
	var raw any
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("bridge: msgpack parse: %w", err)
	}
	return fromGo(raw)
}
