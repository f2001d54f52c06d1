package cmd

import (
	"io"
	"os"

	"github.com/xolan/wfdash/internal/service"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Exit     func(code int)
	Services func() (*service.Services, error)
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Exit:     os.Exit,
		Services: service.NewServices,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
