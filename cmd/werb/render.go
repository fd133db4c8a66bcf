package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-werb"
	"github.com/robbyt/go-werb/options"
	"github.com/robbyt/go-werb/platform/data"
)

func newRenderCmd(g *globalFlags) *cobra.Command {
	f := &compileFlags{}
	var (
		dataPath   string
		rootID     string
		output     string
		statements bool
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a Starlark-flavored template to HTML",
		Long: "Render a Starlark-flavored template to HTML.\n" +
			"\n" +
			"The template is compiled for Starlark and executed against an in-memory DOM. Values\n" +
			"from --data (YAML or JSON) are exposed as globals.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.load(cmd); err != nil {
				return err
			}
			opts, err := f.options()
			if err != nil {
				return err
			}

			vars, err := readData(dataPath)
			if err != nil {
				return err
			}
			l, err := templateLoader(cmd, args[0])
			if err != nil {
				return err
			}
			opts = append(opts,
				options.WithLogHandler(g.logHandler(cmd)),
				options.WithLoader(l),
				options.WithDataProvider(data.NewStaticProvider(vars)),
			)
			if rootID != "" {
				opts = append(opts, options.WithRootID(rootID))
			}

			r, err := werb.NewRenderer(opts...)
			if err != nil {
				return err
			}
			result, err := r.Render(cmd.Context())
			if err != nil {
				return err
			}
			if statements {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), result.Statements)
			}
			return writeOutput(cmd, output, result.HTML+"\n")
		},
	}

	f.register(cmd.Flags(), false)
	cmd.Flags().StringVar(&dataPath, "data", "", "YAML or JSON file with template globals")
	cmd.Flags().StringVar(&rootID, "root-id", "", "id attribute of the root element")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the HTML to this file")
	cmd.Flags().BoolVar(&statements, "statements", false, "Print the generated Starlark to stderr")

	return cmd
}

// readData decodes a YAML mapping; JSON objects parse the same way.
func readData(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	var vars map[string]any
	if err := yaml.Unmarshal(raw, &vars); err != nil {
		return nil, fmt.Errorf("parsing data %s: %w", path, err)
	}
	return vars, nil
}
