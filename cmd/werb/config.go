package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/robbyt/go-werb/dialects"
	"github.com/robbyt/go-werb/dialects/types"
	"github.com/robbyt/go-werb/options"
	"github.com/robbyt/go-werb/transpiler"
)

// fileConfig is the YAML layout read by --config. Flags given on the command line win.
type fileConfig struct {
	Dialect        string   `yaml:"dialect"`
	Root           string   `yaml:"root"`
	Document       string   `yaml:"document"`
	ElPrefix       string   `yaml:"el_prefix"`
	ContentMode    string   `yaml:"content_mode"`
	AppendMode     string   `yaml:"append_mode"`
	Attributes     bool     `yaml:"attributes"`
	KeepWhitespace bool     `yaml:"keep_whitespace"`
	Globals        []string `yaml:"globals"`
}

// compileFlags holds the compiler settings shared by compile and render.
type compileFlags struct {
	configPath string
	fileConfig
}

func (f *compileFlags) register(flags *pflag.FlagSet, withDialect bool) {
	flags.StringVar(&f.configPath, "config", "", "YAML file with default settings")
	if withDialect {
		flags.StringVarP(&f.Dialect, "dialect", "d", string(types.Ruby), "Target dialect: ruby, starlark or risor")
		flags.StringSliceVar(&f.Globals, "globals", nil, "Extra global names the risor validator accepts")
	}
	flags.StringVar(&f.Root, "root", transpiler.DefaultRootName, "Name of the root element variable")
	flags.StringVar(&f.Document, "document", transpiler.DefaultDocumentName, "Name of the document variable")
	flags.StringVar(&f.ElPrefix, "el-prefix", transpiler.DefaultHandlePrefix, "Prefix for generated element handles")
	flags.StringVar(&f.ContentMode, "content-mode", dialects.ContentText.String(), "Content property: text or html")
	flags.StringVar(&f.AppendMode, "append-mode", transpiler.AppendEager.String(), "Append order: eager or deferred")
	flags.BoolVar(&f.Attributes, "attributes", false, "Emit setAttribute statements for tag attributes")
	flags.BoolVar(&f.KeepWhitespace, "keep-whitespace", false, "Keep whitespace-only text between tags")
}

// load merges the config file under the flags the user actually set.
func (f *compileFlags) load(cmd *cobra.Command) error {
	if f.configPath == "" {
		return nil
	}
	raw, err := os.ReadFile(f.configPath)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", f.configPath, err)
	}

	flags := cmd.Flags()
	setString := func(name string, dst *string, v string) {
		if v != "" && !flags.Changed(name) {
			*dst = v
		}
	}
	setString("dialect", &f.Dialect, fc.Dialect)
	setString("root", &f.Root, fc.Root)
	setString("document", &f.Document, fc.Document)
	setString("el-prefix", &f.ElPrefix, fc.ElPrefix)
	setString("content-mode", &f.ContentMode, fc.ContentMode)
	setString("append-mode", &f.AppendMode, fc.AppendMode)
	if fc.Attributes && !flags.Changed("attributes") {
		f.Attributes = true
	}
	if fc.KeepWhitespace && !flags.Changed("keep-whitespace") {
		f.KeepWhitespace = true
	}
	if len(fc.Globals) > 0 && !flags.Changed("globals") {
		f.Globals = fc.Globals
	}
	return nil
}

func (f *compileFlags) options() ([]options.Option, error) {
	content, err := dialects.ParseContentMode(f.ContentMode)
	if err != nil {
		return nil, err
	}
	appendMode, err := transpiler.ParseAppendMode(f.AppendMode)
	if err != nil {
		return nil, err
	}

	opts := []options.Option{
		options.WithRootName(f.Root),
		options.WithDocumentName(f.Document),
		options.WithHandlePrefix(f.ElPrefix),
		options.WithContentMode(content),
		options.WithAppendMode(appendMode),
		options.WithAttributes(f.Attributes),
		options.WithKeepWhitespace(f.KeepWhitespace),
	}
	if f.Dialect != "" {
		opts = append(opts, options.WithDialect(types.Type(f.Dialect)))
	}
	if len(f.Globals) > 0 {
		opts = append(opts, options.WithGlobals(f.Globals...))
	}
	return opts, nil
}
