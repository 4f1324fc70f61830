// Package profile provides optional runtime profiling for the sexp command.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only when the
// binary is built with the "pprof" build tag:
//
//	go build -tags pprof -o sexp .
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op controller, so callers never need to check which build they are in.
//
// # Modes
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      live heap profiling
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Profiler{}.Apply(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//	)
//	defer p.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the mode (cpu.pprof, mem.pprof, and so on). Analyze them with
//
//	go tool pprof -http=: sexp cpu.pprof
//
// A parser-heavy workload is easiest to profile through the eval command
// reading a large program from a file:
//
//	sexp --pprof-mode=cpu eval --source=program.sexp
package profile
