package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/justinpbarnett/coupontop/internal/api"
	"github.com/justinpbarnett/coupontop/internal/catalog"
	"github.com/justinpbarnett/coupontop/internal/config"
	"github.com/justinpbarnett/coupontop/internal/control"
	"github.com/justinpbarnett/coupontop/internal/logging"
)

type globalFlags struct {
	configPath string
	server     string
	logLevel   string
	noColor    bool
}

// globalState is everything a subcommand needs from the outside world.
// Tests swap the streams and the filesystem.
type globalState struct {
	ctx context.Context

	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	isTTY  bool

	flags globalFlags

	// Set by the root command's pre-run.
	cfg    *config.Config
	logger *logrus.Logger
}

func newGlobalState(ctx context.Context) *globalState {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return &globalState{
		ctx:    ctx,
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: colorable.NewColorableStdout(),
		stderr: colorable.NewColorableStderr(),
		isTTY:  tty,
	}
}

// color returns a color that honours --no-color and a non-terminal stdout.
func (gs *globalState) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if gs.flags.noColor || !gs.isTTY {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (gs *globalState) client() *api.Client {
	return api.NewClientFromConfig(&gs.cfg.Server)
}

func (gs *globalState) controller(client control.API, logger logrus.FieldLogger) *control.Controller {
	return &control.Controller{
		API:         client,
		Fs:          gs.fs,
		UIDsFile:    gs.cfg.Data.UIDsFile,
		CouponsFile: gs.cfg.Data.CouponsFile,
		Logger:      logger,
	}
}

func (gs *globalState) catalog() (*catalog.Catalog, error) {
	return catalog.Load(gs.fs, gs.cfg.Data.UIDsFile, gs.cfg.Data.CouponsFile)
}

func (gs *globalState) persistentFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.StringVarP(&gs.flags.configPath, "config", "c", "", "config file (default: ./coupontop.yaml, ./coupontop.toml or ~/.config/coupontop/config.yaml)")
	flags.StringVar(&gs.flags.server, "server", "", "backend base URL, overrides server.url")
	flags.StringVar(&gs.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.BoolVar(&gs.flags.noColor, "no-color", false, "disable colored output")
	return flags
}

func (gs *globalState) persistentPreRunE(_ *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if gs.flags.configPath != "" {
		cfg, err = config.LoadFile(gs.flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if gs.flags.server != "" {
		cfg.Server.URL = gs.flags.server
	}
	if gs.flags.logLevel != "" {
		cfg.Log.Level = gs.flags.logLevel
	}

	logger, err := logging.NewConsole(cfg.Log.Level, gs.flags.noColor)
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}
	logger.SetOutput(gs.stderr)

	gs.cfg = cfg
	gs.logger = logger
	return nil
}

func newRootCommand(gs *globalState) *cobra.Command {
	tui := &cmdTUI{gs: gs}
	root := &cobra.Command{
		Use:   "coupontop",
		Short: "Console for the coupon automation backend",
		Long: "coupontop starts coupon runs, follows the live worker log, watches\n" +
			"browser sessions and browses historical logs on a coupon automation backend.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: gs.persistentPreRunE,
		Args:              cobra.NoArgs,
		RunE:              tui.run,
	}
	root.PersistentFlags().AddFlagSet(gs.persistentFlagSet())

	root.AddCommand(
		getCmdTUI(gs),
		getCmdRun(gs, control.KindRun),
		getCmdRun(gs, control.KindForceRun),
		getCmdSave(gs),
		getCmdDelete(gs),
		getCmdStatus(gs),
		getCmdTail(gs),
		getCmdLogs(gs),
		getCmdVersion(gs),
	)
	return root
}

// execute runs the command line and returns the process exit code.
func (gs *globalState) execute(args []string) int {
	root := newRootCommand(gs)
	root.SetArgs(args)
	root.SetIn(gs.stdin)
	root.SetOut(gs.stdout)
	root.SetErr(gs.stderr)

	if err := root.ExecuteContext(gs.ctx); err != nil {
		if gs.logger != nil {
			gs.logger.Error(err)
		} else {
			fmt.Fprintln(gs.stderr, "error:", err)
		}
		return 1
	}
	return 0
}
