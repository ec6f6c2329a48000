// Package fmemu contains core domain types and interfaces for the file manager emulator
package fmemu

// NodeKind identifies what a node in the tree represents
type NodeKind int

const (
	Directory NodeKind = iota
	File
	HardLink    // marker entry that blocks deletion of its target
	DynamicLink // marker entry that follows its target and dies with it
)

func (k NodeKind) String() string {
	switch k {
	case Directory:
		return "dir"
	case File:
		return "file"
	case HardLink:
		return "hlink"
	case DynamicLink:
		return "dlink"
	default:
		return "unknown"
	}
}

// IsLink reports whether the kind is one of the link marker kinds
func (k NodeKind) IsLink() bool {
	return k == HardLink || k == DynamicLink
}
