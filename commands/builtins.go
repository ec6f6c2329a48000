package commands

import "github.com/brettbedarf/fmemu"

// RegisterBuiltins registers the handlers for all ten file manager commands
// on r, or only the given ones if command words are provided
func RegisterBuiltins(r *Registry, cmds ...fmemu.CommandType) {
	builtins := map[fmemu.CommandType]Handler{
		fmemu.MakeDirCmd:         unary(fmemu.Operator.MakeDir),
		fmemu.ChangeDirCmd:       unary(fmemu.Operator.ChangeDir),
		fmemu.RemoveDirCmd:       unary(fmemu.Operator.RemoveDir),
		fmemu.DeleteTreeCmd:      unary(fmemu.Operator.DeleteTree),
		fmemu.MakeFileCmd:        unary(fmemu.Operator.MakeFile),
		fmemu.MakeHardLinkCmd:    binary(fmemu.Operator.MakeHardLink),
		fmemu.MakeDynamicLinkCmd: binary(fmemu.Operator.MakeDynamicLink),
		fmemu.DeleteFileCmd:      unary(fmemu.Operator.DeleteFile),
		fmemu.CopyCmd:            binary(fmemu.Operator.Copy),
		fmemu.MoveCmd:            binary(fmemu.Operator.Move),
	}
	if len(cmds) == 0 {
		for cmd, h := range builtins {
			r.Register(cmd, h)
		}
		return
	}
	for _, cmd := range cmds {
		if h, ok := builtins[cmd]; ok {
			r.Register(cmd, h)
		}
	}
}

func unary(fn func(fmemu.Operator, string) error) Handler {
	return func(op fmemu.Operator, args []string) error {
		return fn(op, arg(args, 0))
	}
}

func binary(fn func(fmemu.Operator, string, string) error) Handler {
	return func(op fmemu.Operator, args []string) error {
		return fn(op, arg(args, 0), arg(args, 1))
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
