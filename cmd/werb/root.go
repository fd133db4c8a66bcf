package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
}

func (g *globalFlags) logHandler(cmd *cobra.Command) slog.Handler {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "werb",
		Short: "Compile ERB-style HTML templates into DOM statements",
		Long: "Compile ERB-style HTML templates into DOM statements.\n" +
			"\n" +
			"Each template is parsed into elements, text and <% %> directives, then lowered into\n" +
			"imperative statements (createElement, appendChild, innerText updates) for Ruby,\n" +
			"Starlark or Risor. The render command executes the Starlark form in-process and\n" +
			"prints the resulting HTML.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newCompileCmd(g))
	cmd.AddCommand(newRenderCmd(g))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
