package cli

import (
	"context"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/justyntemme/vcparam/pkg/framework/param"
)

type dumpDocument struct {
	Parameters []dumpEntry `yaml:"parameters"`
}

type dumpEntry struct {
	ID         uint32  `yaml:"id"`
	Name       string  `yaml:"name"`
	Value      string  `yaml:"value"`
	Normalized float64 `yaml:"normalized,omitempty"`
}

func runDump(ctx context.Context, out io.Writer, args []string) error {
	fs := newFlagSet("dump")
	hidden := fs.Bool("hidden", false, "Include hidden parameters.")
	changed := fs.Bool("changed", false, "Only print values that differ from the default.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageError("dump: exactly one snapshot file is required")
	}

	core := newCore(ctx)
	if err := readSnapshot(ctx, core, fs.Arg(0)); err != nil {
		return err
	}

	var doc dumpDocument
	for _, d := range core.Schema().All() {
		if d.Flags.Has(param.IsHidden) && !*hidden {
			continue
		}
		v := core.Value(d.ID)
		if *changed && v.Equal(d.DefaultValue()) {
			continue
		}
		entry := dumpEntry{
			ID:    uint32(d.ID),
			Name:  d.Name,
			Value: d.FormatValue(v),
		}
		if d.Type != param.TextType {
			entry.Normalized = d.Normalize(v)
		}
		doc.Parameters = append(doc.Parameters, entry)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
