package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brettbedarf/fmemu/config"
	"github.com/brettbedarf/fmemu/internal/util"
	"github.com/brettbedarf/fmemu/runner"
)

func main() {
	// Parse command line arguments
	var (
		configPath string
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to a yaml or json config file")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.IntVar(&verbose, "verbose", 2, "Log verbosity level between 1 (error) and 5 (trace). Default is 2 (warn).")
	flag.IntVar(&verbose, "v", 2, "--verbose (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] batch_file_path\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	util.InitializeLogger(util.LevelFromVerbosity(verbose))
	logger := util.GetLogger("main")

	script := flag.Arg(0)
	if script == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.NewDefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.NewConfigFromFile(configPath); err != nil {
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config")
		}
	}
	// an explicit flag wins over the config file
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "verbose" || f.Name == "v" {
			cfg.LogLvl = util.LevelFromVerbosity(verbose)
		}
	})
	if configPath != "" {
		util.InitializeLogger(cfg.LogLvl)
		logger = util.GetLogger("main")
	}
	logger.Debug().Interface("config", cfg).Str("script", script).Msg("Emulator initializing")

	r := runner.New(cfg)
	if err := r.RunFile(script); err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(1)
	}
	if err := r.Render(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("Failed to print tree")
	}
}
