package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/justyntemme/vcparam/internal/config"
	"github.com/justyntemme/vcparam/internal/ctxlog"
	"github.com/justyntemme/vcparam/pkg/preset"
)

func runPreset(ctx context.Context, out io.Writer, cfg *config.Config, args []string) (retErr error) {
	if len(args) == 0 {
		return usageError("preset: missing subcommand (save, load, list, delete)")
	}

	store, err := preset.OpenSQLite(cfg.PresetDB)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil && retErr == nil {
			retErr = err
		}
	}()
	ctxlog.FromContext(ctx).Debug("opened preset database", "path", store.Path())

	sub, rest := args[0], args[1:]
	switch sub {
	case "save":
		return presetSave(ctx, store, rest)
	case "load":
		return presetLoad(ctx, store, rest)
	case "list":
		return presetList(ctx, out, store)
	case "delete":
		if len(rest) != 1 {
			return usageError("preset delete: exactly one name is required")
		}
		return store.Delete(ctx, rest[0])
	default:
		return usageError("preset: unknown subcommand %q", sub)
	}
}

func presetSave(ctx context.Context, store preset.Store, args []string) error {
	fs := newFlagSet("preset save")
	inPath := fs.String("in", "", "Snapshot file to store.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *inPath == "" || fs.NArg() != 1 {
		return usageError("preset save: -in FILE and one NAME are required")
	}

	// Round trip through a core so only decodable snapshots are stored
	core := newCore(ctx)
	if err := readSnapshot(ctx, core, *inPath); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := core.Write(&buf); err != nil {
		return err
	}
	return store.Save(ctx, fs.Arg(0), buf.Bytes())
}

func presetLoad(ctx context.Context, store preset.Store, args []string) error {
	fs := newFlagSet("preset load")
	outPath := fs.String("out", "", "Snapshot file to write.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *outPath == "" || fs.NArg() != 1 {
		return usageError("preset load: -out FILE and one NAME are required")
	}

	p, err := store.Load(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	core := newCore(ctx)
	if err := restore(ctx, core, bytes.NewReader(p.Data), "preset "+p.Name); err != nil {
		return err
	}
	return writeSnapshot(core, *outPath)
}

func presetList(ctx context.Context, out io.Writer, store preset.Store) error {
	infos, err := store.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tUPDATED")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", info.Name, info.Size, info.Updated.Format(time.RFC3339))
	}
	return tw.Flush()
}

