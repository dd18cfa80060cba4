// Copyright (c) 2026 The izon Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Command izon loads definition files into a container and inspects it.
//
//	izon -d 'conf/{base,local}.yaml' list
//	izon -d conf/app.yaml get db.dsn mailer
//	izon -d conf/app.yaml graph --highlight mailer | dot -Tsvg > graph.svg
//	izon -d conf/app.yaml serve --addr :8080
//
// Flags fall back to the IZON_* environment variables, see config.Settings.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/derbenni/izon"
	"github.com/derbenni/izon/config"
	"github.com/derbenni/izon/izonhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// listenFn serves h on addr until ctx is done.
var listenFn = listen

// app holds what the subcommands share once the root command has run.
type app struct {
	settings  *config.Settings
	logger    *zap.Logger
	container *izon.Container
}

func newRootCmd() *cobra.Command {
	var (
		a           app
		definitions []string
		logLevel    string
	)

	root := &cobra.Command{
		Use:           "izon",
		Short:         "Inspect izon containers built from definition files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.LoadSettings()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("definitions") {
				s.Definitions = definitions
			}
			if cmd.Flags().Changed("log-level") {
				s.LogLevel = logLevel
			}

			logger, err := s.Logger()
			if err != nil {
				return err
			}

			b := izon.NewBuilder(izon.WithLogger(logger), izon.RecoverFromPanics())
			if err := config.AddDefinitionsByPath(b, s.Definitions...); err != nil {
				return err
			}
			c, err := b.Build()
			if err != nil {
				return err
			}

			a = app{settings: s, logger: logger, container: c}
			return nil
		},
	}

	root.PersistentFlags().StringSliceVarP(&definitions, "definitions", "d", nil,
		"glob patterns of definition files, later files override earlier ones")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"minimum log level (default from IZON_LOG_LEVEL or info)")

	root.AddCommand(
		newListCmd(&a),
		newGetCmd(&a),
		newGraphCmd(&a),
		newServeCmd(&a),
	)
	return root
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the ids of all definitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, id := range a.container.IDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]...",
		Short: "Resolve ids and print their values",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				v, err := a.container.Get(id)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "%v: %+v\n", id, v)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
				}
			}
			return nil
		},
	}
}

func newGraphCmd(a *app) *cobra.Command {
	var highlight string
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the dependency graph in DOT format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []izon.VisualizeOption
			if highlight != "" {
				_, err := a.container.Get(highlight)
				if err != nil && izon.CanVisualizeError(err) {
					opts = append(opts, izon.VisualizeError(err))
				}
			}
			return izon.Visualize(a.container, cmd.OutOrStdout(), opts...)
		},
	}
	cmd.Flags().StringVar(&highlight, "highlight", "", "resolve this id and mark its failure in the graph")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the container over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.settings.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := izonhttp.New(a.container, izonhttp.WithLogger(a.logger))
			a.logger.Info("serving container", zap.String("addr", addr))
			return listenFn(ctx, addr, h)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default from IZON_HTTP_ADDR or :8080)")
	return cmd
}

func listen(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
