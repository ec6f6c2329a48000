// Package runner executes file manager batch scripts against an in-memory
// filesystem and renders the resulting tree.
package runner

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/brettbedarf/fmemu/commands"
	"github.com/brettbedarf/fmemu/config"
	"github.com/brettbedarf/fmemu/filesystem"
	"github.com/brettbedarf/fmemu/internal/util"
)

// Runner wires a fresh filesystem to the command registry
type Runner struct {
	*filesystem.FileSystem
	cfg      *config.Config
	registry *commands.Registry
}

// New creates a Runner with all built-in commands registered
func New(cfg *config.Config) *Runner {
	registry := commands.NewRegistry()
	commands.RegisterBuiltins(registry)
	return &Runner{
		FileSystem: filesystem.NewFS(cfg),
		cfg:        cfg,
		registry:   registry,
	}
}

// Registry exposes the command registry for custom commands
func (r *Runner) Registry() *commands.Registry {
	return r.registry
}

// Run executes script line by line and stops at the first fatal error,
// leaving the tree in the state it reached. Unknown command words are
// skipped unless StrictCommands is set.
func (r *Runner) Run(script io.Reader) error {
	logger := util.GetLogger("Runner.Run")

	scanner := bufio.NewScanner(script)
	lineNo, executed := 0, 0
	for scanner.Scan() {
		lineNo++
		cmd, ok := commands.ParseLine(scanner.Text())
		if !ok {
			continue
		}
		cmd.Line = lineNo

		err := r.registry.Dispatch(r.FileSystem, cmd)
		if errors.Is(err, commands.ErrUnknownCommand) && !r.cfg.StrictCommands {
			logger.Debug().Int("line", cmd.Line).Str("cmd", string(cmd.Type)).Msg("Ignoring unknown command")
			continue
		}
		if err != nil {
			logger.Debug().Int("line", cmd.Line).Str("cmd", string(cmd.Type)).Err(err).Msg("Command failed")
			return err
		}
		executed++
		logger.Trace().Int("line", cmd.Line).Str("cmd", string(cmd.Type)).Strs("args", cmd.Args).Msg("Command applied")
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	logger.Debug().Int("lines", lineNo).Int("executed", executed).Msg("Script finished")
	return nil
}

// RunFile opens the script at path and runs it
func (r *Runner) RunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Run(f)
}
