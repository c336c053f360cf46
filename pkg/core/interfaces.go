package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DebugOptions controls diagnostic output. It is passed explicitly to the
// components that log so that output never depends on process-wide state.
type DebugOptions struct {
	Verbose bool   // Emit per-stage diagnostics
	Logger  Logger // Destination; nothing is logged when nil
}

// Logf writes a message when verbose output is enabled and a logger is set
func (o DebugOptions) Logf(format string, args ...interface{}) {
	if !o.Verbose || o.Logger == nil {
		return
	}
	o.Logger.Printf(format, args...)
}

// Enabled reports whether Logf would write anything
func (o DebugOptions) Enabled() bool {
	return o.Verbose && o.Logger != nil
}
