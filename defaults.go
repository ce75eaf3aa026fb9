package treecodec

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// config is the immutable per-call snapshot of Options with defaults applied.
// It must not be mutated for the duration of an encode/decode call.
type config struct {
	time  TimeCodec
	bytes BytesCodec
	keys  KeyCodec
	ctx   map[string]any
	log   Logger
}

func newConfig(opts *Options) *config {
	if opts == nil {
		opts = &Options{}
	}
	return &config{
		time:  coalesce[TimeCodec](opts.Time, TimeNative{}),
		bytes: coalesce[BytesCodec](opts.Bytes, BytesBase64{}),
		keys:  coalesce[KeyCodec](opts.Keys, KeysIdentity{}),
		ctx:   opts.Context,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
	}
}
