package filesystem

import (
	"strings"

	"github.com/brettbedarf/fmemu"
	"github.com/brettbedarf/fmemu/internal/util"
)

// MakeDir creates an empty directory unless the name is already taken in
// the parent.
func (fs *FileSystem) MakeDir(p string) error {
	return fs.makeEntry(OpMakeDir, p, fmemu.Directory)
}

// MakeFile creates a file unless the name is already taken in the parent.
func (fs *FileSystem) MakeFile(p string) error {
	return fs.makeEntry(OpMakeFile, p, fmemu.File)
}

func (fs *FileSystem) makeEntry(op, p string, kind fmemu.NodeKind) error {
	logger := util.GetLogger("FS." + op)

	parent, name, err := fs.resolveParent(op, p)
	if err != nil {
		return err
	}
	if !fs.isValidLeaf(name) {
		return newError(op, p, ErrInvalidName)
	}
	if parent.HasEntry(name) {
		logger.Debug().Str("path", p).Err(ErrNameCollision).Msg("Skipped existing entry")
		return nil
	}
	node := NewNode(name, kind)
	parent.AddChild(node)
	logger.Debug().Str("path", node.Path()).Stringer("kind", kind).Msg("Created entry")
	return nil
}

// ChangeDir sets the current directory. Only the parent of p has to exist;
// the drive alone selects the root.
func (fs *FileSystem) ChangeDir(p string) error {
	logger := util.GetLogger("FS.CD")

	if p == "" {
		return newError(OpChangeDir, p, ErrInvalidPath)
	}
	abs := fs.Abs(p)
	parentPath, name := Split(abs)
	if parentPath == "" {
		if !strings.EqualFold(name, fs.root.name) {
			return newError(OpChangeDir, p, ErrInvalidPath)
		}
	} else {
		if fs.resolver.Resolve(parentPath) == nil {
			return newError(OpChangeDir, p, ErrInvalidPath)
		}
		if !fs.isValidLeaf(name) {
			return newError(OpChangeDir, p, ErrInvalidName)
		}
	}
	fs.cwd = abs
	logger.Debug().Str("cwd", abs).Msg("Changed directory")
	return nil
}

// RemoveDir removes an empty directory. A directory with entries or with
// dynamic links pointing at it is left in place without error.
func (fs *FileSystem) RemoveDir(p string) error {
	logger := util.GetLogger("FS.RD")

	if p == "" {
		return newError(OpRemoveDir, p, ErrInvalidPath)
	}
	if fs.protectsCwd(fs.Abs(p)) {
		return newError(OpRemoveDir, p, ErrCurrentDirProtected)
	}
	parent, name, err := fs.resolveParent(OpRemoveDir, p)
	if err != nil {
		return err
	}
	dir, ok := parent.GetDir(name)
	if !ok {
		return newError(OpRemoveDir, p, ErrNotFound)
	}
	if err := BlockIfHardLinked(dir); err != nil {
		return newError(OpRemoveDir, p, err)
	}
	if !dir.IsEmpty() || dir.HasDynLinks() {
		logger.Debug().Str("path", dir.Path()).Err(ErrNotEmpty).Msg("Skipped directory removal")
		return nil
	}
	parent.RemoveChild(dir)
	Destroy(dir)
	logger.Debug().Str("path", fs.Abs(p)).Msg("Removed directory")
	return nil
}

// DeleteTree removes a directory with everything below it. Fails if the
// subtree holds the current directory or any hard linked node.
func (fs *FileSystem) DeleteTree(p string) error {
	logger := util.GetLogger("FS.DELTREE")

	parent, name, err := fs.resolveParent(OpDeleteTree, p)
	if err != nil {
		return err
	}
	dir, ok := parent.GetDir(name)
	if !ok {
		return newError(OpDeleteTree, p, ErrNotFound)
	}
	if fs.protectsCwd(dir.Path()) {
		return newError(OpDeleteTree, p, ErrCurrentDirProtected)
	}
	if linked := FindHardLinked(dir); linked != nil {
		logger.Debug().Str("linked", linked.Path()).Msg("Subtree is hard linked")
		return newError(OpDeleteTree, p, ErrHardLinkBlocked)
	}
	parent.RemoveChild(dir)
	Destroy(dir)
	logger.Debug().Str("path", fs.Abs(p)).Msg("Deleted tree")
	return nil
}

// MakeHardLink places a hard link marker for src inside directory dst
func (fs *FileSystem) MakeHardLink(src, dst string) error {
	return fs.makeLink(OpMakeHardLink, fmemu.HardLink, src, dst)
}

// MakeDynamicLink places a dynamic link marker for src inside directory dst
func (fs *FileSystem) MakeDynamicLink(src, dst string) error {
	return fs.makeLink(OpMakeDynamicLink, fmemu.DynamicLink, src, dst)
}

func (fs *FileSystem) makeLink(op string, kind fmemu.NodeKind, src, dst string) error {
	logger := util.GetLogger("FS." + op)

	if dst == "" {
		return newError(op, dst, ErrInvalidPath)
	}
	destDir := fs.resolver.Resolve(fs.Abs(dst))
	if destDir == nil {
		return newError(op, dst, ErrInvalidPath)
	}
	_, target, err := fs.resolveEntry(op, src)
	if err != nil {
		return err
	}
	marker, ok := createLink(kind, target, destDir)
	if !ok {
		logger.Debug().Str("target", target.Path()).Str("dst", destDir.Path()).Err(ErrNameCollision).Msg("Link already exists")
		return nil
	}
	logger.Debug().Str("marker", marker.name).Str("dst", destDir.Path()).Msg("Created link")
	return nil
}

// DeleteFile removes a file or link marker. Dynamic links to it go with it.
func (fs *FileSystem) DeleteFile(p string) error {
	logger := util.GetLogger("FS.DEL")

	parent, name, err := fs.resolveParent(OpDeleteFile, p)
	if err != nil {
		return err
	}
	file, ok := parent.GetFile(name)
	if !ok {
		return newError(OpDeleteFile, p, ErrNotFound)
	}
	if err := BlockIfHardLinked(file); err != nil {
		return newError(OpDeleteFile, p, err)
	}
	parent.RemoveChild(file)
	Destroy(file)
	logger.Debug().Str("path", fs.Abs(p)).Msg("Deleted file")
	return nil
}

// Copy places a copy of src (a directory subtree, file or link marker)
// inside the directory dst. Nothing happens when src and dst are the same
// path or dst already holds an entry of that name.
func (fs *FileSystem) Copy(src, dst string) error {
	logger := util.GetLogger("FS.COPY")

	_, node, dstDir, err := fs.prepareTransfer(OpCopy, src, dst)
	if err != nil || node == nil {
		return err
	}
	if dstDir.HasEntry(node.name) {
		logger.Debug().Str("src", src).Str("dst", dstDir.Path()).Err(ErrNameCollision).Msg("Skipped copy")
		return nil
	}
	cp := fs.clone(node, dstDir, nil)
	logger.Debug().Str("src", node.Path()).Str("copy", cp.Path()).Msg("Copied")
	return nil
}

// Move copies src into dst, deletes the original and updates dynamic links
// so they point at the new location.
func (fs *FileSystem) Move(src, dst string) error {
	logger := util.GetLogger("FS.MOVE")

	srcParent, node, dstDir, err := fs.prepareTransfer(OpMove, src, dst)
	if err != nil || node == nil {
		return err
	}
	if node.IsDir() {
		if fs.protectsCwd(node.Path()) {
			return newError(OpMove, src, ErrCurrentDirProtected)
		}
		if dstDir == node || node.IsAncestorOf(dstDir) {
			return newError(OpMove, dst, ErrInvalidPath)
		}
	}
	if linked := FindHardLinked(node); linked != nil {
		logger.Debug().Str("linked", linked.Path()).Msg("Source is hard linked")
		return newError(OpMove, src, ErrHardLinkBlocked)
	}
	if dstDir.HasEntry(node.name) {
		logger.Debug().Str("src", src).Str("dst", dstDir.Path()).Err(ErrNameCollision).Msg("Skipped move")
		return nil
	}

	pairs := make(map[*Node]*Node)
	cp := fs.clone(node, dstDir, pairs)
	for orig, c := range pairs {
		TransferDynLinks(orig, c)
	}
	srcParent.RemoveChild(node)
	Destroy(node)
	Retarget(cp, cp.Path())
	logger.Debug().Str("src", src).Str("dst", cp.Path()).Msg("Moved")
	return nil
}

// prepareTransfer resolves the operands shared by copy and move. A nil node
// with a nil error means there is nothing to do.
func (fs *FileSystem) prepareTransfer(op, src, dst string) (srcParent, node, dstDir *Node, err error) {
	if src == "" {
		return nil, nil, nil, newError(op, src, ErrInvalidPath)
	}
	if dst == "" {
		return nil, nil, nil, newError(op, dst, ErrInvalidPath)
	}
	if fs.Abs(src) == fs.Abs(dst) {
		return nil, nil, nil, nil
	}
	if dstDir, err = fs.resolveDir(op, dst); err != nil {
		return nil, nil, nil, err
	}
	if srcParent, node, err = fs.resolveEntry(op, src); err != nil {
		return nil, nil, nil, err
	}
	return srcParent, node, dstDir, nil
}

// clone deep copies n into dst. Copies start without incoming links; copied
// markers are registered with the original marker's target. pairs, if not
// nil, receives every original -> copy mapping.
func (fs *FileSystem) clone(n, dst *Node, pairs map[*Node]*Node) *Node {
	if pairs == nil {
		pairs = make(map[*Node]*Node)
	}
	// build detached so copying a directory into its own subtree terminates
	cp := cloneDetached(n, pairs)
	dst.AddChild(cp)
	for orig, c := range pairs {
		if orig.kind.IsLink() && orig.target != nil {
			register(c, orig.target, c.parent)
		}
	}
	return cp
}

func cloneDetached(n *Node, pairs map[*Node]*Node) *Node {
	cp := NewNode(n.name, n.kind)
	pairs[n] = cp
	if !n.IsDir() {
		return cp
	}
	for _, f := range n.Files() {
		cp.AddChild(cloneDetached(f, pairs))
	}
	for _, d := range n.Dirs() {
		cp.AddChild(cloneDetached(d, pairs))
	}
	return cp
}

// isValidLeaf is the naming rule minus the drive exemption, which only
// applies to the root itself
func (fs *FileSystem) isValidLeaf(name string) bool {
	return !strings.EqualFold(name, fs.root.name) && fs.resolver.IsValidName(name)
}
