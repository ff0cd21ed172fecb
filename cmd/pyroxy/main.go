package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/pyroxy"
	"github.com/fwojciec/pyroxy/viper"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// DefaultConfigFile is looked up in the XDG config directories when no
// config file is given.
const DefaultConfigFile = "pyroxy/pyroxy.ini"

// Main represents the program.
type Main struct {
	// Loaded configuration. Set by Run().
	Config *pyroxy.Config
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pyroxy"),
		kong.Description("Package index mirror that filters redundant links from simple index pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pyroxy --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	path, err := configPath(cli.ConfigFile)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: pass --config or set PYROXY_CONFIG\n")
		return err
	}
	m.Config, err = viper.Load(path)
	if err != nil {
		return err
	}
	deps.Config = m.Config

	deps.Logger, err = newLogger(m.Config, cli.LogLevel, stderr)
	if err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// configPath returns the config file to load: the explicit path if given,
// otherwise the first DefaultConfigFile found in the XDG config
// directories.
func configPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	path, err := xdg.SearchConfigFile(DefaultConfigFile)
	if err != nil {
		return "", pyroxy.Errorf(pyroxy.ENOTFOUND, "no config file given and %s not found in XDG config directories", DefaultConfigFile)
	}
	return path, nil
}

// newLogger creates the text logger on w. The level comes from flag if set,
// then the log_level option, then the debug option, and defaults to info.
func newLogger(cfg *pyroxy.Config, flag string, w io.Writer) (*slog.Logger, error) {
	level := slog.LevelInfo

	name := flag
	if name == "" {
		name, _ = cfg.Get(pyroxy.OptionLogLevel)
	}
	if name != "" {
		if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
			return nil, pyroxy.Errorf(pyroxy.EINVALID, "invalid log level %q", name)
		}
	} else {
		debug, _, err := cfg.Bool(pyroxy.OptionDebug)
		if err != nil {
			return nil, err
		}
		if debug {
			level = slog.LevelDebug
		}
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func webPath(cfg *pyroxy.Config) (string, error) {
	path, ok := cfg.Get(pyroxy.OptionWebPath)
	if !ok || strings.TrimSpace(path) == "" {
		return "", pyroxy.Errorf(pyroxy.EINVALID, "%s is not set in the [main] section", pyroxy.OptionWebPath)
	}
	return path, nil
}
