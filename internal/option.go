package internal

import (
	"io"
	"os"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	version string

	// logOutput receives structured logs; out receives command output.
	logOutput io.Writer
	out       io.Writer

	dumpArchive string
	dumpWidth   int
}

func newApplication(opts []Option) *application {
	app := &application{
		version:   "dev",
		logOutput: os.Stdout,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(a *application) {
		if v != "" {
			a.version = v
		}
	}
}

// WithLogOutput redirects structured logs. The MCP command uses it to keep
// stdout free for the protocol.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}

// WithOutput sets where command output such as dump lines is written.
func WithOutput(w io.Writer) Option {
	return func(a *application) {
		a.out = w
	}
}

// WithDumpArchive restricts dump to a single archive path relative to the
// corpus root.
func WithDumpArchive(path string) Option {
	return func(a *application) {
		a.dumpArchive = path
	}
}

// WithDumpWidth truncates each dump line to width terminal cells. Zero
// disables truncation.
func WithDumpWidth(width int) Option {
	return func(a *application) {
		a.dumpWidth = width
	}
}
