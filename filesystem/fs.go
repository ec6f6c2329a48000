package filesystem

import (
	"github.com/brettbedarf/fmemu"
	"github.com/brettbedarf/fmemu/config"
	"github.com/brettbedarf/fmemu/internal/util"
)

var _ fmemu.Operator = (*FileSystem)(nil)

// FileSystem is the command engine: it owns the node tree and the current
// directory and applies file manager commands to them.
//
// NOTE: FileSystem is **not** thread-safe; commands are expected to run one
// at a time to completion.
type FileSystem struct {
	cfg      *config.Config
	root     *Node // Root of node tree, named after the drive
	resolver *Resolver
	cwd      string // Normalized absolute path of the current directory
}

func NewFS(cfg *config.Config) *FileSystem {
	root := NewNode(cfg.DriveName(), fmemu.Directory)
	fs := &FileSystem{
		cfg:      cfg,
		root:     root,
		resolver: NewResolver(root, cfg.MaxBaseLen, cfg.MaxExtLen),
		cwd:      root.name,
	}
	logger := util.GetLogger("NewFS")
	logger.Debug().Str("root", root.name).Msg("Filesystem created")
	return fs
}

func (fs *FileSystem) Root() *Node {
	return fs.root
}

// CurrentDir returns the absolute path of the current directory
func (fs *FileSystem) CurrentDir() string {
	return fs.cwd
}

func (fs *FileSystem) Resolver() *Resolver {
	return fs.resolver
}

// Abs returns the normalized absolute form of p relative to the current directory
func (fs *FileSystem) Abs(p string) string {
	return fs.resolver.Abs(p, fs.cwd)
}

// Lookup resolves p to the directory, file or link marker it names
func (fs *FileSystem) Lookup(p string) (*Node, bool) {
	abs := fs.Abs(p)
	if abs == fs.root.name {
		return fs.root, true
	}
	parentPath, name := Split(abs)
	parent := fs.resolver.Resolve(parentPath)
	if parent == nil {
		return nil, false
	}
	return parent.GetEntry(name)
}

// resolveParent normalizes p and resolves its parent directory
func (fs *FileSystem) resolveParent(op, p string) (parent *Node, name string, err error) {
	if p == "" {
		return nil, "", newError(op, p, ErrInvalidPath)
	}
	parentPath, name := Split(fs.Abs(p))
	if parent = fs.resolver.Resolve(parentPath); parent == nil {
		return nil, "", newError(op, p, ErrInvalidPath)
	}
	return parent, name, nil
}

// resolveEntry resolves p to an existing directory or file entry along with
// its parent directory
func (fs *FileSystem) resolveEntry(op, p string) (parent, entry *Node, err error) {
	parent, name, err := fs.resolveParent(op, p)
	if err != nil {
		return nil, nil, err
	}
	entry, ok := parent.GetEntry(name)
	if !ok {
		return nil, nil, newError(op, p, ErrNotFound)
	}
	return parent, entry, nil
}

// resolveDir resolves p to an existing directory; the drive alone names the root
func (fs *FileSystem) resolveDir(op, p string) (*Node, error) {
	if p == "" {
		return nil, newError(op, p, ErrInvalidPath)
	}
	abs := fs.Abs(p)
	if abs == fs.root.name {
		return fs.root, nil
	}
	parent, name, err := fs.resolveParent(op, p)
	if err != nil {
		return nil, err
	}
	dir, ok := parent.GetDir(name)
	if !ok {
		return nil, newError(op, p, ErrNotFound)
	}
	return dir, nil
}

// protectsCwd reports whether removing abs would remove the current directory
func (fs *FileSystem) protectsCwd(abs string) bool {
	return Contains(abs, fs.cwd)
}
