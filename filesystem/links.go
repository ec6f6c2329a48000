package filesystem

import (
	"github.com/brettbedarf/fmemu"
	"github.com/brettbedarf/fmemu/internal/util"
)

const (
	hardLinkPrefix = "hlink["
	dynLinkPrefix  = "dlink["
	linkSuffix     = "]"
)

// MarkerName returns the display name of a link marker of kind pointing at
// targetPath. The name doubles as the marker's identity within a directory.
func MarkerName(kind fmemu.NodeKind, targetPath string) string {
	prefix := dynLinkPrefix
	if kind == fmemu.HardLink {
		prefix = hardLinkPrefix
	}
	return prefix + targetPath + linkSuffix
}

// CreateHardLink places a hard link marker for target in destDir.
// Returns the marker and true, or nil and false if destDir already holds an
// entry with the marker's name.
func CreateHardLink(target, destDir *Node) (*Node, bool) {
	return createLink(fmemu.HardLink, target, destDir)
}

// CreateDynamicLink is [CreateHardLink] for dynamic links
func CreateDynamicLink(target, destDir *Node) (*Node, bool) {
	return createLink(fmemu.DynamicLink, target, destDir)
}

func createLink(kind fmemu.NodeKind, target, destDir *Node) (*Node, bool) {
	name := MarkerName(kind, target.Path())
	if destDir.HasEntry(name) {
		return nil, false
	}
	marker := NewNode(name, kind)
	destDir.AddChild(marker)
	register(marker, target, destDir)
	return marker, true
}

// register records marker in target's reference map matching the marker kind
func register(marker, target, owner *Node) {
	target.linkRefs(marker.kind)[marker.id] = &linkRef{marker: marker, owner: owner}
	marker.target = target
}

// unregister drops marker from its target's reference map
func unregister(marker *Node) {
	if marker.target == nil {
		return
	}
	delete(marker.target.linkRefs(marker.kind), marker.id)
	marker.target = nil
}

// BlockIfHardLinked fails with ErrHardLinkBlocked while any hard link
// marker references n
func BlockIfHardLinked(n *Node) error {
	if n.HasHardLinks() {
		return ErrHardLinkBlocked
	}
	return nil
}

// FindHardLinked returns the first node in n's subtree (n included) that
// is the target of a hard link, or nil. Files are visited before
// subdirectories, both in name order.
func FindHardLinked(n *Node) *Node {
	if n.HasHardLinks() {
		return n
	}
	if !n.IsDir() {
		return nil
	}
	for _, f := range n.Files() {
		if f.HasHardLinks() {
			return f
		}
	}
	for _, d := range n.Dirs() {
		if found := FindHardLinked(d); found != nil {
			return found
		}
	}
	return nil
}

// CascadeDeleteDynLinks removes every dynamic link marker pointing at n from
// its owning directory and destroys it
func CascadeDeleteDynLinks(n *Node) {
	logger := util.GetLogger("Links.Cascade")
	for id, ref := range n.dLinks {
		delete(n.dLinks, id)
		ref.owner.RemoveChild(ref.marker)
		ref.marker.target = nil
		Destroy(ref.marker)
		logger.Debug().Str("marker", ref.marker.name).Str("owner", ref.owner.Path()).Msg("Deleted dynamic link")
	}
}

// Destroy tears down a detached node and its whole subtree: dynamic links
// pointing at any destroyed node are deleted, destroyed markers leave their
// target's reference map and hard link markers pointing at destroyed nodes
// are left without a target. Hard link checks are the caller's job.
func Destroy(n *Node) {
	if n.isDel {
		return
	}
	n.isDel = true
	if n.IsDir() {
		for _, f := range n.Files() {
			n.RemoveChild(f)
			Destroy(f)
		}
		for _, d := range n.Dirs() {
			n.RemoveChild(d)
			Destroy(d)
		}
	}
	CascadeDeleteDynLinks(n)
	unregister(n)
	for id, ref := range n.hLinks {
		delete(n.hLinks, id)
		ref.marker.target = nil
	}
	n.parent = nil
}

// TransferDynLinks moves every dynamic link reference of from onto to and
// points the markers at to
func TransferDynLinks(from, to *Node) {
	for id, ref := range from.dLinks {
		delete(from.dLinks, id)
		to.dLinks[id] = ref
		ref.marker.target = to
	}
}

// Retarget renames the dynamic link markers of n and of every node below it
// to embed their new location, n living at newPath. Hard link markers keep
// their text. A rename that would collide with another entry in the marker's
// directory deletes the renamed marker instead.
func Retarget(n *Node, newPath string) {
	for _, ref := range n.dLinks {
		renameMarker(ref, MarkerName(fmemu.DynamicLink, newPath))
	}
	if !n.IsDir() {
		return
	}
	for _, f := range n.Files() {
		Retarget(f, Join(newPath, f.name))
	}
	for _, d := range n.Dirs() {
		Retarget(d, Join(newPath, d.name))
	}
}

func renameMarker(ref *linkRef, name string) {
	marker, owner := ref.marker, ref.owner
	if marker.name == name {
		return
	}
	logger := util.GetLogger("Links.Retarget")
	owner.RemoveChild(marker)
	if owner.HasEntry(name) {
		logger.Debug().Str("marker", marker.name).Str("name", name).Msg("Dropping marker duplicated by rename")
		Destroy(marker)
		return
	}
	logger.Debug().Str("from", marker.name).Str("to", name).Msg("Renamed dynamic link")
	marker.name = name
	owner.AddChild(marker)
}
