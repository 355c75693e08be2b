package main

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/config"
	"github.com/trickstertwo/xtrace/diag"
	"github.com/trickstertwo/xtrace/trace"
)

func newRootCmd(loader config.Loader) *cobra.Command {
	root := &cobra.Command{
		Use:           "xtrace",
		Short:         "Inspect and exercise trace destinations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd(loader), newEmitCmd(loader))
	return root
}

func newCheckCmd(loader config.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the configuration from the environment and print it with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loader.Load()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(cfg)
		},
	}
}

type emitFlags struct {
	typ     string
	context string
	source  string
	fields  []string
}

func newEmitCmd(loader config.Loader) *cobra.Command {
	var f emitFlags
	cmd := &cobra.Command{
		Use:   "emit <description>",
		Short: "Write one record through the configured destination",
		Long: "Write one record through the configured destination. Without configured\n" +
			"listeners the line is printed on standard output.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, loader, f, strings.Join(args, " "))
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.typ, "type", "t", "info", "log type: success, info, event, warning, failure, error or critical")
	fs.StringVarP(&f.context, "context", "c", "xtrace", "context of the record")
	fs.StringVar(&f.source, "source", "", "source of the record")
	fs.StringSliceVarP(&f.fields, "field", "f", nil, "data attached to the record (KEY=VALUE)")
	return cmd
}

func runEmit(cmd *cobra.Command, loader config.Loader, f emitFlags, description string) error {
	typ, ok := xtrace.ParseLogType(f.typ)
	if !ok {
		return errors.Errorf("unknown log type %q", f.typ)
	}
	fields, err := parseFields(f.fields)
	if err != nil {
		return err
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	dest, err := trace.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer dest.Close()
	if len(cfg.Listeners) == 0 {
		dest.ResetFacade(trace.NewFacade(diag.NewCollection(diag.NewWriterListener(cmd.OutOrStdout()))))
	}

	logger, err := xtrace.NewBuilder().ForAllLogs().CustomDestination(dest).BuildLogger()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ev := logger.WithType(typ, f.context).Source(f.source)
	for _, kv := range fields {
		ev.Str(kv[0], kv[1])
	}
	_, err = ev.MsgContext(ctx, description)
	return err
}

func parseFields(raw []string) ([][2]string, error) {
	out := make([][2]string, 0, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, errors.Errorf("field %q: want KEY=VALUE", kv)
		}
		out = append(out, [2]string{k, v})
	}
	return out, nil
}
