package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/justyntemme/vcparam/internal/config"
	"github.com/justyntemme/vcparam/internal/ctxlog"
	"github.com/justyntemme/vcparam/internal/observe"
	"github.com/justyntemme/vcparam/pkg/framework/controller"
	"github.com/justyntemme/vcparam/pkg/framework/engine"
	"github.com/justyntemme/vcparam/pkg/framework/param"
	"github.com/justyntemme/vcparam/pkg/framework/state"
	"github.com/justyntemme/vcparam/pkg/paramid"
	"github.com/justyntemme/vcparam/pkg/vc"
)

// Execute runs the parsed command, writing its results to out. Each run
// is one span; log records carry its trace id.
func (inv *Invocation) Execute(ctx context.Context, out io.Writer) (err error) {
	ctx, span := observe.StartSpan(ctx, "vcstate."+inv.Command,
		trace.WithAttributes(attribute.Int("vcstate.args", len(inv.Args))),
	)
	defer func() { observe.EndSpan(span, err) }()
	ctx = ctxlog.WithLogger(ctx, observe.WithTrace(ctx, ctxlog.FromContext(ctx)))

	return inv.dispatch(ctx, out)
}

func (inv *Invocation) dispatch(ctx context.Context, out io.Writer) error {
	switch inv.Command {
	case "params":
		return runParams(out, inv.Args)
	case "defaults":
		return runDefaults(ctx, inv.Config, inv.Args)
	case "dump":
		return runDump(ctx, out, inv.Args)
	case "edit":
		return runEdit(ctx, out, inv.Config, inv.Args)
	case "preset":
		return runPreset(ctx, out, inv.Config, inv.Args)
	default:
		return usageError("unknown command %q", inv.Command)
	}
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageError("%s: %v", fs.Name(), err)
	}
	return nil
}

func newCore(ctx context.Context) *controller.Core {
	return controller.New(vc.Schema(),
		controller.WithLogger(ctxlog.FromContext(ctx)),
		controller.WithMetrics(observe.DefaultMetrics()),
	)
}

// readSnapshot restores core from the file at path. A truncated snapshot
// is accepted with a warning.
func readSnapshot(ctx context.Context, core *controller.Core, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()
	return restore(ctx, core, f, path)
}

func restore(ctx context.Context, core *controller.Core, r io.Reader, source string) error {
	err := core.Read(r)
	if errors.Is(err, state.ErrTruncated) {
		ctxlog.FromContext(ctx).Warn("snapshot truncated", "source", source)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", source, err)
	}
	return nil
}

func writeSnapshot(core *controller.Core, path string) (retErr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	if err := core.Write(f); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

func runParams(out io.Writer, args []string) error {
	fs := newFlagSet("params")
	all := fs.Bool("all", false, "Include hidden parameters.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tDEFAULT\tFLAGS")
	for _, d := range vc.Schema().All() {
		if d.Flags.Has(param.IsHidden) && !*all {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Type, d.FormatValue(d.DefaultValue()), flagNames(d.Flags))
	}
	return tw.Flush()
}

func flagNames(f param.Flags) string {
	var names []string
	for _, fl := range []struct {
		flag param.Flags
		name string
	}{
		{param.CanAutomate, "automate"},
		{param.IsReadOnly, "readonly"},
		{param.IsList, "list"},
		{param.IsHidden, "hidden"},
	} {
		if f.Has(fl.flag) {
			names = append(names, fl.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func runDefaults(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("defaults")
	outPath := fs.String("o", "", "Snapshot file to write.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *outPath == "" {
		return usageError("defaults: -o is required")
	}

	core := newCore(ctx)
	if err := core.ApplyExternalEdit(paramid.Lock, param.Int(cfg.Lock.Index())); err != nil {
		return fmt.Errorf("set lock: %w", err)
	}
	core.Drain()
	return writeSnapshot(core, *outPath)
}

// lookupParam resolves a parameter by name or number
func lookupParam(schema *param.Schema, key string) (*param.Descriptor, error) {
	if d, ok := schema.ByName(key); ok {
		return d, nil
	}
	if n, err := strconv.ParseUint(key, 10, 32); err == nil {
		if d, ok := schema.Find(param.ID(n)); ok {
			return d, nil
		}
	}
	return nil, usageError("unknown parameter %q", key)
}

// notifyPrinter prints the parameters changed as a side effect of an edit
type notifyPrinter struct {
	out  io.Writer
	core *controller.Core
}

func (p *notifyPrinter) NotifyNormalized(id param.ID, normalized float64) {
	d := p.core.Schema().Lookup(id)
	fmt.Fprintf(p.out, "  %s -> %s (%.4f)\n", d.Name, d.FormatValue(p.core.Value(id)), normalized)
}

func (p *notifyPrinter) NotifyText(id param.ID, text string) {
	d := p.core.Schema().Lookup(id)
	fmt.Fprintf(p.out, "  %s -> %q\n", d.Name, text)
}

func runEdit(ctx context.Context, out io.Writer, cfg *config.Config, args []string) error {
	fs := newFlagSet("edit")
	inPath := fs.String("in", "", "Snapshot to start from. Defaults are used when empty.")
	outPath := fs.String("out", "", "Snapshot file to write. Defaults to -in.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *outPath == "" {
		*outPath = *inPath
	}
	if *outPath == "" {
		return usageError("edit: -out is required when -in is empty")
	}
	if fs.NArg() == 0 {
		return usageError("edit: no edits given")
	}

	logger := ctxlog.FromContext(ctx)
	core := newCore(ctx)
	if *inPath != "" {
		if err := readSnapshot(ctx, core, *inPath); err != nil {
			return err
		}
	}

	schema := core.Schema()
	proxy := engine.NewProxy(
		engine.WithLogger(logger),
		engine.WithMetrics(observe.DefaultMetrics()),
	)
	if err := engine.SyncAll(proxy, schema, core.Store(), paramid.Model); err != nil {
		logger.Warn("engine rejected stored settings", "error", err)
	}

	printer := &notifyPrinter{out: out, core: core}
	for _, arg := range fs.Args() {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return usageError("edit: %q is not ID=VALUE", arg)
		}
		d, err := lookupParam(schema, key)
		if err != nil {
			return err
		}

		if d.Type == param.TextType {
			if d.IsFilePath {
				value = cfg.ResolveModel(value)
			}
			err = core.SetText(d.ID, value)
		} else {
			err = core.SetFormatted(d.ID, value)
		}
		if err != nil {
			return &ExitError{Code: 1, Message: fmt.Sprintf("edit %s: %s", d.Name, describe(err))}
		}

		ids := append([]param.ID{d.ID}, core.Touched()...)
		if err := engine.Apply(proxy, schema, core.Store(), ids...); err != nil {
			logger.Warn("engine rejected edit", "parameter", d.Name, "error", err)
		}

		fmt.Fprintf(out, "%s = %s\n", d.Name, d.FormatValue(core.Value(d.ID)))
		if d.ID == paramid.Model && !proxy.Loaded() {
			fmt.Fprintln(out, "  Error: Unknown model version.")
		}
		core.Notify(printer)
	}

	return writeSnapshot(core, *outPath)
}

// describe renders an edit error with the message an editor would show
func describe(err error) string {
	switch param.CodeOf(err) {
	case param.FileOpenError, param.ConfigSyntaxError:
		return "Error: Failed to load model. (" + err.Error() + ")"
	default:
		return err.Error()
	}
}
