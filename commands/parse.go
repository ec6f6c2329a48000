package commands

import (
	"strings"

	"github.com/brettbedarf/fmemu"
)

// MaxArgs is the number of arguments kept per line; extra tokens are dropped
const MaxArgs = 2

// ParseLine tokenizes a script line on whitespace into a command word
// (lower-cased) and up to [MaxArgs] arguments. Returns false for blank lines.
func ParseLine(line string) (fmemu.Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmemu.Command{}, false
	}
	args := fields[1:]
	if len(args) > MaxArgs {
		args = args[:MaxArgs]
	}
	return fmemu.Command{
		Type: fmemu.CommandType(strings.ToLower(fields[0])),
		Args: args,
	}, true
}
