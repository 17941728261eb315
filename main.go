package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/shazow/ssidshuffle/internal/config"
	"github.com/shazow/ssidshuffle/internal/logging"
	"github.com/shazow/ssidshuffle/wifi"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

func main() {
	var (
		rootFlagSet = flag.NewFlagSet("ssidshuffle", flag.ExitOnError)
		ifaceFlag   = rootFlagSet.String("interface", "", "wireless network interface, for example 'en0' (default: the current wireless interface)")
		configPath  = rootFlagSet.String("config", "", "path to config toml file (default: ~/.config/ssidshuffle/config.toml)")
		verbose     = rootFlagSet.Bool("verbose", false, "enable debug logging")
		version     = rootFlagSet.Bool("version", false, "display version")
	)

	var (
		logger *slog.Logger
		cfg    *config.Config
		plat   *platform
	)

	// setup builds the per-invocation handle to the wireless subsystem.
	// It runs inside the subcommand Execs, after all flags are parsed.
	setup := func(ctx context.Context) (*wifi.Shuffler, string, error) {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return nil, "", err
		}
		plat, err = newPlatform(ctx, cfg, logger)
		if err != nil {
			return nil, "", err
		}
		requested := *ifaceFlag
		if requested == "" {
			requested = cfg.Interface
		}
		iface, err := resolveInterface(ctx, plat, requested)
		if err != nil {
			return nil, "", err
		}
		sh := &wifi.Shuffler{
			Store:    plat.Store,
			Tool:     plat.Tool,
			Radio:    plat.Radio,
			OSMajor:  plat.OSMajor,
			Elevated: os.Geteuid() == 0,
			Log:      logger,
		}
		return sh, iface, nil
	}

	listCmd := &ffcli.Command{
		Name:       "list",
		ShortUsage: "ssidshuffle list",
		ShortHelp:  "List the current SSID order for the interface",
		Exec: func(ctx context.Context, args []string) error {
			sh, iface, err := setup(ctx)
			if err != nil {
				return err
			}
			return runList(ctx, os.Stdout, sh, iface)
		},
	}

	setFlagSet := flag.NewFlagSet("set", flag.ExitOnError)
	setDryRun := setFlagSet.Bool("n", false, "dry run: print the merged order without applying it")
	setForceTool := setFlagSet.Bool("networksetup", false, "force the networksetup backend; note that re-added SSIDs get auto-join enabled")
	setPowerCycle := setFlagSet.Bool("power-cycle", false, "power cycle the wireless interface after applying, with a short wait between off/on")
	setCmd := &ffcli.Command{
		Name:       "set",
		ShortUsage: "ssidshuffle set [flags] <ssid> [ssid ...]",
		ShortHelp:  "Re-order the preferred SSIDs",
		LongHelp: "Re-orders the preferred SSIDs on the interface. SSIDs are applied in the\n" +
			"order given, with any remaining configured SSIDs keeping their current\n" +
			"relative order after them. A single SSID is moved to the first position.",
		FlagSet: setFlagSet,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("set requires at least one ssid")
			}
			sh, iface, err := setup(ctx)
			if err != nil {
				return err
			}
			if !*setDryRun && plat.RequiresRoot && os.Geteuid() != 0 {
				return fmt.Errorf("you must be root to apply these changes: %w", wifi.ErrPrivilegeRequired)
			}
			return runSet(ctx, os.Stdout, os.Stderr, sh, iface, args, setOptions{
				DryRun:         *setDryRun,
				ForceTool:      *setForceTool || cfg.ForceNetworksetup,
				PowerCycle:     *setPowerCycle,
				PowerCycleWait: cfg.PowerCycleWait.Duration,
			})
		},
	}

	root := &ffcli.Command{
		ShortUsage:  "ssidshuffle [flags] <subcommand> [args...]",
		FlagSet:     rootFlagSet,
		Subcommands: []*ffcli.Command{listCmd, setCmd},
	}
	root.Exec = func(ctx context.Context, args []string) error {
		return runRoot(os.Stderr, ffcli.DefaultUsageFunc(root))
	}

	// Pre-parse the root flags so -version and -verbose take effect before
	// the command tree runs; root.ParseAndRun parses them again, which is
	// fine.
	err := ff.Parse(rootFlagSet, os.Args[1:],
		ff.WithEnvVarPrefix("SSIDSHUFFLE"),
		ff.WithIgnoreUndefined(true),
	)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.FlagSet.Usage()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(wifi.ExitFailure)
	}

	if *version {
		fmt.Println(Version)
		os.Exit(0)
	}

	logger = logging.New(os.Stderr, *verbose)

	if err := root.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(wifi.ExitFailure)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(wifi.ExitCode(err))
	}
}
