package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AzorianSolutions/grandstart/internal/infrastructure/config"
	"github.com/AzorianSolutions/grandstart/internal/infrastructure/logging"
)

// app holds what every subcommand needs once the root has run.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "grandstart",
		Short: "Generate Grandstream HT8xx configurations from subscriber lines",
		Long: `grandstart reads a CSV or XLSX export with one row per subscriber line,
sizes each subscriber onto HT818, HT814 and HT812 adapters, and renders one
XML configuration per adapter from a template.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"configuration file (default "+defaultConfigPath+" when present, env GRANDSTART_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"log level: trace, debug, info, warn, error")

	root.AddCommand(
		newRunCmd(a),
		newPlanCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads the env file and configuration and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(defaultEnvFile); err != nil {
		return err
	}

	path, err := resolveConfigPath(a.configPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	a.cfg = cfg

	var out io.Writer = cmd.ErrOrStderr()
	if strings.EqualFold(cfg.Logging.Output, "stdout") {
		out = cmd.OutOrStdout()
	}
	a.log = logging.NewWithWriter(cfg.Logging, version, out)
	if path != "" {
		a.log.Debug("configuration loaded", "path", path)
	}
	return nil
}

// resolveConfigPath picks the flag, then GRANDSTART_CONFIG, then the default
// file if it exists. An empty result means defaults plus environment.
func resolveConfigPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("GRANDSTART_CONFIG"); env != "" {
		return env, nil
	}
	_, err := os.Stat(defaultConfigPath)
	switch {
	case err == nil:
		return defaultConfigPath, nil
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("checking %s: %w", defaultConfigPath, err)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// The version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "grandstart %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
