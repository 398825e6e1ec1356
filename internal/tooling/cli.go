// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-19
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// staticd · Cobra root command
//
// Usage:
//
//	staticd [port] [--static-dir DIR] [--access-log FILE] [--watch]
//
// With no port argument the server listens on 0.0.0.0:8000. A port
// that does not parse as an integer aborts before anything listens.
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"staticd/internal/logging"
	srvhttp "staticd/server/http"
)

// Version is overridden at link time with -ldflags "-X staticd/internal/tooling.Version=...".
var Version = "0.1.0"

const (
	DefaultBind = "0.0.0.0"
	DefaultPort = 8000
)

var errPortRange = errors.New("out of range 0-65535")

// InvalidPortError reports a port argument that is not a usable integer.
type InvalidPortError struct {
	Arg string
	Err error
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port %q: %v", e.Arg, e.Err)
}

func (e *InvalidPortError) Unwrap() error { return e.Err }

// ParsePort parses the positional port argument.
func ParsePort(arg string) (int, error) {
	p, err := strconv.Atoi(arg)
	if err != nil {
		return 0, &InvalidPortError{Arg: arg, Err: err}
	}
	if p < 0 || p > 65535 {
		return 0, &InvalidPortError{Arg: arg, Err: errPortRange}
	}
	return p, nil
}

// ServeFunc runs a configured server until ctx is done.
type ServeFunc func(ctx context.Context, srv *srvhttp.Server) error

// Serve is the production ServeFunc.
func Serve(ctx context.Context, srv *srvhttp.Server) error {
	return srv.Start(ctx)
}

type options struct {
	bind           string
	staticDir      string
	accessLog      string
	rate           float64
	burst          int
	watch          bool
	allowTraversal bool
	debug          bool
}

// defaultStaticDir is the "static" directory next to the executable.
func defaultStaticDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "static"
	}
	return filepath.Join(filepath.Dir(exe), "static")
}

// NewRootCommand builds the staticd command tree. serve is called once the
// server is configured.
func NewRootCommand(serve ServeFunc) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "staticd [port]",
		Short:         "Serve a static directory over HTTP",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			port := DefaultPort
			if len(args) == 1 {
				p, err := ParsePort(args[0])
				if err != nil {
					return err
				}
				port = p
			}

			log := logging.New(cmd.ErrOrStderr(), o.debug)
			if o.allowTraversal {
				log.Warn("requests may read files outside the static dir")
			}
			srv, err := srvhttp.New(srvhttp.Config{
				Bind:           o.bind,
				Port:           port,
				StaticDir:      o.staticDir,
				AccessLog:      o.accessLog,
				RateLimit:      rate.Limit(o.rate),
				RateBurst:      o.burst,
				AllowTraversal: o.allowTraversal,
				Watch:          o.watch,
				Logger:         log,
			})
			if err != nil {
				return err
			}
			if err := serve(cmd.Context(), srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	f := cmd.Flags()
	f.StringVar(&o.bind, "bind", DefaultBind, "bind address")
	f.StringVar(&o.staticDir, "static-dir", defaultStaticDir(), "directory for static files")
	f.StringVar(&o.accessLog, "access-log", "", "append JSON access log lines to this file")
	f.Float64Var(&o.rate, "rate", 0, "max requests per second, 0 for unlimited")
	f.IntVar(&o.burst, "burst", 1, "rate limiter burst size")
	f.BoolVar(&o.watch, "watch", false, "log changes under the static dir")
	f.BoolVar(&o.allowTraversal, "allow-traversal", false, "do not confine request paths to the static dir")
	f.BoolVar(&o.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print staticd version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "staticd v%s\n", Version)
		},
	})
	return cmd
}

// Execute runs the CLI. Typically called from main().
func Execute(ctx context.Context) {
	if err := NewRootCommand(Serve).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
