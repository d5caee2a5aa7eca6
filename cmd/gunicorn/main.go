// Package main is the configuration front end for the server: it builds
// the setting catalog into a live configuration, layers config file,
// environment, and command-line flags on top of the defaults, and reports
// the effective settings.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/gunicorn/internal/config"
	"github.com/dshills/gunicorn/internal/config/cli"
	"github.com/dshills/gunicorn/internal/config/loader"
	"github.com/dshills/gunicorn/internal/config/registry"
	"github.com/dshills/gunicorn/internal/logging"
)

const envPrefix = "GUNICORN_"

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.New(config.WithUsage("gunicorn [OPTIONS]"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to build configuration: %v\n", err)
		return 1
	}

	specs := cli.Options(cfg)
	flags := cli.FlagSet("gunicorn", specs)

	root := &cobra.Command{
		Use:           "gunicorn",
		Short:         "Pre-fork worker server configuration front end",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return configure(cmd, cfg, specs)
		},
	}
	root.Flags().AddFlagSet(flags)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// configure applies the configuration layers in precedence order: config
// file, then environment, then flags the user explicitly set. Every value
// goes through Set, so a malformed input fails here naming the setting.
func configure(cmd *cobra.Command, cfg *config.Config, specs []cli.OptionSpec) error {
	// The config flag decides which file to load, so it applies first.
	if f := cmd.Flags().Lookup("config"); f != nil && f.Changed {
		if err := cfg.Set("config", f.Value.String()); err != nil {
			return err
		}
	} else if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := cfg.Set("config", path); err != nil {
			return err
		}
	}

	if path, _ := cfg.GetString("config"); path != "" {
		values, err := loadFile(path)
		if err != nil {
			return err
		}
		if err := apply(cfg, values, false); err != nil {
			return err
		}
	}

	envValues, err := loader.NewEnvLoader(envPrefix).Load()
	if err != nil {
		return err
	}
	// Stray GUNICORN_* variables are not ours to reject.
	if err := apply(cfg, envValues, true); err != nil {
		return err
	}

	for _, spec := range specs {
		f := cmd.Flags().Lookup(spec.Name())
		if f == nil || !f.Changed {
			continue
		}
		if err := cfg.Set(spec.Dest, f.Value.String()); err != nil {
			return err
		}
	}

	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	addr, err := cfg.Address()
	if err != nil {
		return err
	}
	workerClass, err := cfg.WorkerClass()
	if err != nil {
		return err
	}
	logger.Info("configuration loaded",
		"proc_name", cfg.ProcName(),
		"bind", addr.String(),
		"workers", cfg.Workers(),
		"worker_class", workerClass.Name(),
	)

	printSettings(cmd, cfg)
	return nil
}

// loadFile picks the loader by file extension.
func loadFile(path string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return loader.NewTOMLLoader(path).Load()
	case ".json":
		return loader.NewJSONLoader(path).Load()
	case ".lua":
		// The script loader stays open for the process lifetime so
		// script-defined hooks remain callable.
		return loader.NewScriptLoader(path, config.Builtin()).Load()
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", path)
	}
}

// apply pushes loaded values into the configuration in a deterministic
// order. With ignoreUnknown, names that match no setting are skipped;
// validation failures always propagate.
func apply(cfg *config.Config, values map[string]any, ignoreUnknown bool) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		err := cfg.Set(name, values[name])
		if err == nil {
			continue
		}
		if ignoreUnknown && errors.Is(err, config.ErrUnknownSetting) {
			continue
		}
		return err
	}
	return nil
}

func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	level, _ := cfg.GetString("loglevel")
	file, _ := cfg.GetString("logfile")
	return logging.New(logging.Config{Level: level, File: file})
}

func printSettings(cmd *cobra.Command, cfg *config.Config) {
	for _, holder := range cfg.Settings() {
		s := holder.Setting()
		if s.Type == registry.TypeCallable {
			continue
		}
		cmd.Printf("%-20s = %v\n", s.Name, holder.Get())
	}
}
