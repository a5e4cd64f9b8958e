package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-nutrition/app/providers"
	"github.com/km-arc/go-nutrition/bootstrap"
	"github.com/km-arc/go-nutrition/framework/app"
	"github.com/km-arc/go-nutrition/framework/config"
	"github.com/km-arc/go-nutrition/framework/http/validation"
	"github.com/km-arc/go-nutrition/framework/logging"
)

// errInvalid makes `check` exit non-zero after printing its messages.
var errInvalid = errors.New("value is invalid")

var kinds = []validation.Kind{
	validation.KindUsername,
	validation.KindEmail,
	validation.KindPassword,
	validation.KindText,
	validation.KindSearch,
}

type rootOptions struct {
	envFile   string
	verbosity int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "nutrition",
		Short:         "Nutrition app server and form validation tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load")
	root.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	root.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
		newSanitizeCmd(),
		newVersionCmd(),
	)
	return root
}

// config loads the environment, letting -v override LOG_LEVEL.
func (o *rootOptions) config() *config.Config {
	cfg := config.Load(o.envFile)
	if o.verbosity > 0 {
		cfg.Log.Level = logging.VerbosityLevel(o.verbosity)
	}
	return cfg
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a := bootstrap.New(app.WithConfig(opts.config()), app.WithLogOutput(cmd.ErrOrStderr()))
			go providers.RunActivity(ctx, a.Container)
			return a.Serve(ctx)
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}

	return &cobra.Command{
		Use:       fmt.Sprintf("check <%s> <value>", strings.Join(names, "|")),
		Short:     "Validate one value against the configured rules",
		Args:      cobra.ExactArgs(2),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := validation.Kind(args[0])
			if !knownKind(kind) {
				return fmt.Errorf("unknown kind %q, want one of %s", args[0], strings.Join(names, ", "))
			}
			rules, err := config.LoadRules(opts.config().RulesFile)
			if err != nil {
				return err
			}

			clean, res := rules.Check(kind, args[1])
			out := cmd.OutOrStdout()
			if clean != args[1] {
				fmt.Fprintf(out, "sanitized: %s\n", clean)
			}
			if res.Valid {
				fmt.Fprintln(out, rules.ValidMessage())
				return nil
			}
			for _, msg := range res.Messages {
				fmt.Fprintln(out, msg)
			}
			return errInvalid
		},
	}
}

func newSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize <value>",
		Short: "Strip markup and non-printable characters from a value",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), validation.Sanitize(args[0]))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nutrition version %s\n", app.Version)
		},
	}
}

func knownKind(k validation.Kind) bool {
	for _, known := range kinds {
		if k == known {
			return true
		}
	}
	return false
}
