package fmemu

// NodeInfo provides read-only access to node information for external consumers
type NodeInfo interface {
	// Name returns the node's name (last path component)
	Name() string

	// Kind returns what the node represents
	Kind() NodeKind

	// Path returns the full absolute path to the node, drive included
	Path() string
}

// Operator is the set of file manager commands a script can drive.
// Every path argument may be absolute ("C:\a\b") or relative to the
// current directory. A returned error is fatal for the batch run.
type Operator interface {
	MakeDir(path string) error
	ChangeDir(path string) error
	RemoveDir(path string) error
	DeleteTree(path string) error
	MakeFile(path string) error
	MakeHardLink(src, dst string) error
	MakeDynamicLink(src, dst string) error
	DeleteFile(path string) error
	Copy(src, dst string) error
	Move(src, dst string) error
}
