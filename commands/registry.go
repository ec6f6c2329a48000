package commands

import (
	"errors"
	"fmt"

	"github.com/brettbedarf/fmemu"
	"github.com/puzpuzpuz/xsync/v4"
)

// ErrUnknownCommand is returned by [Registry.Dispatch] for command words
// without a registered handler
var ErrUnknownCommand = errors.New("unknown command")

// Handler applies one command's arguments to op
type Handler func(op fmemu.Operator, args []string) error

// Registry maps command words to their handlers
type Registry struct {
	handlers *xsync.Map[fmemu.CommandType, Handler]
}

func NewRegistry() *Registry {
	return &Registry{handlers: xsync.NewMap[fmemu.CommandType, Handler]()}
}

// Register ties a handler to a command word, replacing any previous one
func (r *Registry) Register(cmd fmemu.CommandType, h Handler) {
	r.handlers.Store(cmd, h)
}

// Lookup returns the handler registered for cmd
func (r *Registry) Lookup(cmd fmemu.CommandType) (Handler, bool) {
	return r.handlers.Load(cmd)
}

// Dispatch runs the handler for cmd against op. Unregistered command words
// yield an error wrapping [ErrUnknownCommand]; callers decide whether that
// is fatal.
func (r *Registry) Dispatch(op fmemu.Operator, cmd fmemu.Command) error {
	h, ok := r.Lookup(cmd.Type)
	if !ok {
		return fmt.Errorf("%s failed! %w", cmd.Op(), ErrUnknownCommand)
	}
	return h(op, cmd.Args)
}
