package cachestore

// withDefaults fills the optional collaborators of Options: a silent logger,
// no-op hooks and the null/Undefined-rejecting cacheability policy.
func withDefaults(opts Options) Options {
	opts.Logger = coalesce[Logger](opts.Logger, NopLogger{})
	opts.Hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	if opts.IsCacheable == nil {
		opts.IsCacheable = DefaultCacheable
	}
	return opts
}

// coalesce returns def when v is the zero value of T, otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
