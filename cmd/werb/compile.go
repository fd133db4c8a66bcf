package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robbyt/go-werb"
	"github.com/robbyt/go-werb/options"
	"github.com/robbyt/go-werb/platform/loader"
)

func newCompileCmd(g *globalFlags) *cobra.Command {
	f := &compileFlags{}
	var output string
	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile a template into DOM statements",
		Long: "Compile a template into DOM statements.\n" +
			"\n" +
			"FILE may be a path, a file:// or http(s) URL, or - to read from stdin. The statements are\n" +
			"written to stdout unless --output is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.load(cmd); err != nil {
				return err
			}
			opts, err := f.options()
			if err != nil {
				return err
			}
			opts = append(opts, options.WithLogHandler(g.logHandler(cmd)))

			l, err := templateLoader(cmd, args[0])
			if err != nil {
				return err
			}
			code, err := werb.CompileLoader(cmd.Context(), l, opts...)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, code)
		},
	}

	f.register(cmd.Flags(), true)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the statements to this file")

	return cmd
}

// templateLoader reads "-" from stdin, fetches http and https URLs, and reads anything
// else from disk.
func templateLoader(cmd *cobra.Command, arg string) (loader.Loader, error) {
	switch {
	case arg == "-":
		return loader.NewFromIoReader(cmd.InOrStdin(), "stdin")
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return loader.NewFromHTTP(arg)
	default:
		return loader.NewFromDisk(arg)
	}
}

func writeOutput(cmd *cobra.Command, path, content string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}
	_, err := io.WriteString(cmd.OutOrStdout(), content)
	return err
}
