package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/localrivet/mcprules"
	"github.com/localrivet/mcprules/config"
	"github.com/localrivet/mcprules/rules"
)

type cliOptions struct {
	source     config.Source
	configPath string
	verbose    bool
}

func newRootCmd(src config.Source) *cobra.Command {
	opts := &cliOptions{source: src}

	root := &cobra.Command{
		Use:   "mcp-rules",
		Short: "Resolve Cursor AI-assistant rules from ~/.cursor/mcp-config.json",
		Long: `mcp-rules reads the MCP server descriptor written to ~/.cursor/mcp-config.json
and prints the assistant configuration the editor consumes: an always-on MCP
block plus per-file-type rules that prefer one provider's servers.

A missing or malformed descriptor is not an error; the defaults are printed
and the cause is logged on stderr.`,
		Example: `  mcp-rules resolve                  # Print the configuration as JSON
  mcp-rules resolve --format yaml    # Same, as YAML
  mcp-rules servers ollama           # Servers for one provider
  mcp-rules providers                # Provider labels in the descriptor`,
		Version:       mcprules.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Descriptor path (default ~/.cursor/mcp-config.json)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.CompletionOptions.HiddenDefaultCmd = true

	root.AddCommand(
		newResolveCmd(opts),
		newServersCmd(opts),
		newProvidersCmd(opts),
	)
	return root
}

func (o *cliOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *cliOptions) loadOptions() []config.LoadOption {
	if o.configPath == "" {
		return nil
	}
	return []config.LoadOption{config.WithPath(o.configPath)}
}

func (o *cliOptions) resolver(cmd *cobra.Command) *rules.Resolver {
	return rules.NewResolver(
		rules.WithSource(o.source),
		rules.WithLogger(o.logger(cmd.ErrOrStderr())),
		rules.WithLoadOptions(o.loadOptions()...),
	)
}

func newResolveCmd(opts *cliOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the composed assistant configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			cfg := opts.resolver(cmd).Resolve()
			return write(cmd.OutOrStdout(), format, cfg)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	return cmd
}

func newServersCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "servers <provider>",
		Short: "Print the servers whose provider matches exactly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("provider must not be empty")
			}
			r := opts.resolver(cmd)
			r.Resolve()
			return write(cmd.OutOrStdout(), "json", r.ServersByType(args[0]))
		},
	}
}

func newProvidersCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List provider labels found in the descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := opts.resolver(cmd)
			r.Resolve()
			for _, p := range r.Document().Providers() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func write(w io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
