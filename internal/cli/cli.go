package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/justyntemme/vcparam/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Invocation is a parsed command line
type Invocation struct {
	Config  *config.Config
	Command string
	Args    []string
}

const usage = `
vcstate - inspect and edit voice changer parameter snapshots.

Usage:
  vcstate [options] COMMAND [ARGS]

Commands:
  params                          List every parameter of the schema.
  defaults -o FILE                Write a snapshot holding the default values.
  dump [-hidden] FILE             Print a snapshot as YAML.
  edit -in FILE -out FILE ID=VALUE...
                                  Apply edits in order and print what changed.
                                  ID is a parameter name or number.
  preset save -in FILE NAME       Store a snapshot as a named preset.
  preset load -out FILE NAME      Write a named preset to a snapshot file.
  preset list                     List stored presets.
  preset delete NAME              Delete a preset.

Options:
`

// Parse processes global options. It returns the invocation, a boolean
// indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	flagSet := flag.NewFlagSet("vcstate", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a YAML configuration file.")
	logLevelFlag := flagSet.String("log-level", "", "Override the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	presetDBFlag := flagSet.String("preset-db", "", "Override the preset database path.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = config.LogLevel(*logLevelFlag)
	}
	if *presetDBFlag != "" {
		cfg.PresetDB = *presetDBFlag
	}
	if err := config.Validate(cfg); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	inv := &Invocation{
		Config:  cfg,
		Command: flagSet.Arg(0),
		Args:    flagSet.Args()[1:],
	}
	slog.Debug("CLI parser finished successfully.", "command", inv.Command)
	return inv, false, nil
}
