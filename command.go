package fmemu

import "strings"

// CommandType is the lower-cased command word of a script line
type CommandType string

const (
	MakeDirCmd         CommandType = "md"
	ChangeDirCmd       CommandType = "cd"
	RemoveDirCmd       CommandType = "rd"
	DeleteTreeCmd      CommandType = "deltree"
	MakeFileCmd        CommandType = "mf"
	MakeHardLinkCmd    CommandType = "mhl"
	MakeDynamicLinkCmd CommandType = "mdl"
	DeleteFileCmd      CommandType = "del"
	CopyCmd            CommandType = "copy"
	MoveCmd            CommandType = "move"
)

// Command is a single tokenized script line
type Command struct {
	Type CommandType
	Args []string
	Line int // 1-based line number in the script; 0 if unknown
}

// Arg returns the i-th argument or "" if it was not supplied
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// Op returns the upper-cased command word used in error reports
func (c Command) Op() string {
	return strings.ToUpper(string(c.Type))
}
