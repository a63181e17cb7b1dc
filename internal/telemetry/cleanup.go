package telemetry

import "github.com/tebeka/atexit"

// RegisterCleanup guarantees fn runs on every exit path, including a
// fatal atexit.Exit or a panic recovered at the top of main — not just
// a normal return from main, which a plain defer would miss if the
// recovered panic is re-raised as os.Exit.
func RegisterCleanup(fn func()) {
	atexit.Register(fn)
}

// Exit runs every registered cleanup and then terminates the process
// with the given status code.
func Exit(code int) {
	atexit.Exit(code)
}
