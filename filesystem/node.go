package filesystem

import (
	"slices"
	"strings"

	"github.com/brettbedarf/fmemu"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

var _ fmemu.NodeInfo = (*Node)(nil)

// linkRef is a weak back-reference from a link target to one of its markers
type linkRef struct {
	marker *Node
	owner  *Node // directory holding the marker
}

// Node is a directory, file or link marker in the tree.
//
// Directories own two child collections, subdirectories and file entries
// (files plus link markers), which share a single name namespace.
// Link targets carry non-owning maps of the markers pointing at them keyed
// by the marker's ID.
type Node struct {
	id     uuid.UUID
	name   string
	kind   fmemu.NodeKind
	parent *Node
	isDel  bool

	dirs  *xsync.Map[string, *Node] // nil unless kind is Directory
	files *xsync.Map[string, *Node] // nil unless kind is Directory

	target *Node                   // link markers only; nil once detached
	hLinks map[uuid.UUID]*linkRef // hard link markers targeting this node
	dLinks map[uuid.UUID]*linkRef // dynamic link markers targeting this node
}

// NewNode creates a detached node.
//
// NOTE: Parent node is responsible for adding itself to the returned Node's
// parent ref when linking it as its child
func NewNode(name string, kind fmemu.NodeKind) *Node {
	n := &Node{
		id:     uuid.New(),
		name:   name,
		kind:   kind,
		hLinks: make(map[uuid.UUID]*linkRef),
		dLinks: make(map[uuid.UUID]*linkRef),
	}
	if kind == fmemu.Directory {
		n.dirs = xsync.NewMap[string, *Node]()
		n.files = xsync.NewMap[string, *Node]()
	}
	return n
}

func (n *Node) ID() uuid.UUID { return n.id }

func (n *Node) Name() string { return n.name }

func (n *Node) Kind() fmemu.NodeKind { return n.kind }

// Parent returns the owning directory; nil for the root and detached nodes
func (n *Node) Parent() *Node { return n.parent }

func (n *Node) IsDir() bool { return n.kind == fmemu.Directory }

// IsDel returns true once the node has been destroyed
func (n *Node) IsDel() bool { return n.isDel }

// Target returns the node a link marker points at, if still attached
func (n *Node) Target() *Node { return n.target }

// Path returns the absolute path of the node, e.g. `C:\a\b`.
// The root's path is its own name.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.name
	}
	return Join(n.parent.Path(), n.name)
}

// GetDir returns a subdirectory by name
func (n *Node) GetDir(name string) (*Node, bool) {
	if n.dirs == nil {
		return nil, false
	}
	return n.dirs.Load(name)
}

// GetFile returns a file entry (file or link marker) by name
func (n *Node) GetFile(name string) (*Node, bool) {
	if n.files == nil {
		return nil, false
	}
	return n.files.Load(name)
}

// GetEntry looks the name up in both collections, subdirectories first
func (n *Node) GetEntry(name string) (*Node, bool) {
	if d, ok := n.GetDir(name); ok {
		return d, true
	}
	return n.GetFile(name)
}

// HasEntry reports whether name is taken by a subdirectory or a file entry
func (n *Node) HasEntry(name string) bool {
	_, ok := n.GetEntry(name)
	return ok
}

// AddChild stores child in the collection matching its kind and sets the
// child's parent to this node. The caller checks for name collisions.
func (n *Node) AddChild(child *Node) {
	if child.IsDir() {
		n.dirs.Store(child.name, child)
	} else {
		n.files.Store(child.name, child)
	}
	child.parent = n
}

// RemoveChild detaches child from this node. Returns false if child is not
// the entry stored under its name.
func (n *Node) RemoveChild(child *Node) bool {
	m := n.files
	if child.IsDir() {
		m = n.dirs
	}
	if m == nil {
		return false
	}
	if cur, ok := m.Load(child.name); !ok || cur != child {
		return false
	}
	m.Delete(child.name)
	child.parent = nil
	return true
}

// Dirs returns a snapshot of the subdirectories ordered by name
func (n *Node) Dirs() []*Node {
	return sortedChildren(n.dirs)
}

// Files returns a snapshot of the file entries ordered by name
func (n *Node) Files() []*Node {
	return sortedChildren(n.files)
}

// IsEmpty reports whether a directory holds no entries at all
func (n *Node) IsEmpty() bool {
	return n.IsDir() && n.dirs.Size() == 0 && n.files.Size() == 0
}

func (n *Node) HasHardLinks() bool { return len(n.hLinks) > 0 }

func (n *Node) HasDynLinks() bool { return len(n.dLinks) > 0 }

func (n *Node) HardLinkCount() int { return len(n.hLinks) }

func (n *Node) DynLinkCount() int { return len(n.dLinks) }

// IsAncestorOf reports whether other lies strictly below n
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) linkRefs(kind fmemu.NodeKind) map[uuid.UUID]*linkRef {
	if kind == fmemu.HardLink {
		return n.hLinks
	}
	return n.dLinks
}

// sortedChildren orders by raw byte comparison of names
func sortedChildren(m *xsync.Map[string, *Node]) []*Node {
	if m == nil {
		return nil
	}
	nodes := make([]*Node, 0, m.Size())
	m.Range(func(_ string, child *Node) bool {
		nodes = append(nodes, child)
		return true
	})
	slices.SortFunc(nodes, func(a, b *Node) int {
		return strings.Compare(a.name, b.name)
	})
	return nodes
}
