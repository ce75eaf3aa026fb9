// Package treecodec is a bidirectional structural codec: it converts between
// strongly-typed record values and a generic in-memory value tree (Value),
// the serialization analogue of a JSON encoder/decoder whose wire format is
// a tree of typed nodes rather than bytes.
//
// Components:
//   - Value: closed tagged union (Null, Bool, Int, Double, Decimal, String,
//     Array, Object) with total view accessors.
//   - Encoder/Decoder: recursive traversal sessions. The encoder builds a
//     deferred container graph and resolves it once the walk finishes; the
//     decoder borrows the finished tree read-only.
//   - Strategies: pluggable TimeCodec, BytesCodec and KeyCodec selected via
//     Options (epoch/ISO timestamps, base64 blobs, snake_case keys, custom
//     path-aware callbacks).
//   - bridge: interop with JSON, CBOR, msgpack and protobuf Struct.
//
// Record types opt in by implementing TreeMarshaler and TreeUnmarshaler:
//
//	func (u user) MarshalTree(e *treecodec.Encoder) error {
//		obj := e.Object()
//		obj.SetInt("id", u.ID)
//		obj.SetString("name", u.Name)
//		return nil
//	}
//
// Failures carry the full key path (TypeMismatchError, ValueNotFoundError,
// KeyNotFoundError, CorruptedError). Bugs in a marshaler, such as switching
// container kinds mid-session, panic with *ContractViolationError instead of
// returning, so they cannot be confused with bad input.
//
// Calls are self-contained and synchronous; separate calls may run
// concurrently as long as each call's Options value is not mutated.
package treecodec
