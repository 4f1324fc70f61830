package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`

// Profiler configures a profiling session.
//
// The zero value is valid and disabled.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option modifies a Profiler.
type Option func(Profiler) Profiler

// Apply returns a copy of p with each non-nil option applied in order.
func (p Profiler) Apply(opts ...Option) Profiler {
	for _, opt := range opts {
		if opt != nil {
			p = opt(p)
		}
	}

	return p
}

// Start begins profiling and returns a controller for stopping it.
//
// If built without the pprof tag, or if Mode is empty or unrecognized, Start
// returns a no-op controller. Both Start and Stop are always safe to call.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p Profiler) Profiler {
		p.Mode = mode

		return p
	}
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p Profiler) Profiler {
		p.Path = path

		return p
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(p Profiler) Profiler {
		p.Quiet = quiet

		return p
	}
}

type ignore struct{}

func (ignore) Stop() {}
