package filesystem

import (
	"testing"

	"github.com/brettbedarf/fmemu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linkFixture builds C:\a\f.txt plus empty directories C:\b and C:\c
func linkFixture(t *testing.T) (fs *FileSystem, f, b, c *Node) {
	t.Helper()
	fs = newTestFS(t)
	setup(t,
		fs.MakeDir("a"),
		fs.MakeFile(`a\f.txt`),
		fs.MakeDir("b"),
		fs.MakeDir("c"),
	)
	return fs, mustLookup(t, fs, `a\f.txt`), mustLookup(t, fs, "b"), mustLookup(t, fs, "c")
}

func TestMarkerName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `hlink[C:\a\b]`, MarkerName(fmemu.HardLink, `C:\a\b`))
	assert.Equal(t, `dlink[C:\a\b]`, MarkerName(fmemu.DynamicLink, `C:\a\b`))
}

func TestCreateHardLink_Idempotent(t *testing.T) {
	t.Parallel()

	_, f, b, _ := linkFixture(t)

	marker, ok := CreateHardLink(f, b)
	require.True(t, ok)
	assert.Equal(t, `hlink[C:\a\f.txt]`, marker.Name())
	assert.Equal(t, fmemu.HardLink, marker.Kind())
	assert.Same(t, f, marker.Target())
	assert.Same(t, b, marker.Parent())

	again, ok := CreateHardLink(f, b)
	assert.False(t, ok)
	assert.Nil(t, again)

	assert.Len(t, b.Files(), 1)
	assert.Equal(t, 1, f.HardLinkCount())
	assert.Equal(t, 0, f.DynLinkCount())
}

func TestCreateDynamicLink_Idempotent(t *testing.T) {
	t.Parallel()

	_, f, b, c := linkFixture(t)

	_, ok := CreateDynamicLink(f, b)
	require.True(t, ok)
	_, ok = CreateDynamicLink(f, b)
	assert.False(t, ok)
	_, ok = CreateDynamicLink(f, c)
	require.True(t, ok)

	assert.Len(t, b.Files(), 1)
	assert.Len(t, c.Files(), 1)
	assert.Equal(t, 2, f.DynLinkCount())
	assert.Equal(t, 0, f.HardLinkCount())
}

func TestBlockIfHardLinked(t *testing.T) {
	t.Parallel()

	_, f, b, _ := linkFixture(t)
	assert.NoError(t, BlockIfHardLinked(f))

	CreateHardLink(f, b)
	assert.ErrorIs(t, BlockIfHardLinked(f), ErrHardLinkBlocked)
}

func TestCascadeDeleteDynLinks(t *testing.T) {
	t.Parallel()

	fs, f, b, c := linkFixture(t)
	other := mustLookup(t, fs, "a")
	CreateDynamicLink(f, b)
	CreateDynamicLink(f, c)
	CreateDynamicLink(other, c)
	require.True(t, f.HasDynLinks())

	CascadeDeleteDynLinks(f)

	assert.False(t, f.HasDynLinks())
	assert.True(t, b.IsEmpty())
	require.Len(t, c.Files(), 1, "links to other nodes must survive")
	assert.Equal(t, `dlink[C:\a]`, c.Files()[0].Name())
}

func TestDestroy_UnregistersMarkers(t *testing.T) {
	t.Parallel()

	_, f, b, _ := linkFixture(t)
	marker, _ := CreateHardLink(f, b)

	b.RemoveChild(marker)
	Destroy(marker)

	assert.True(t, marker.IsDel())
	assert.Nil(t, marker.Target())
	assert.Equal(t, 0, f.HardLinkCount())
	assert.NoError(t, BlockIfHardLinked(f))
}

func TestDestroy_DetachesHardLinksToCascadedMarker(t *testing.T) {
	t.Parallel()

	fs, f, b, c := linkFixture(t)
	dyn, _ := CreateDynamicLink(f, b)
	hard, _ := CreateHardLink(dyn, c)
	require.Equal(t, 1, dyn.HardLinkCount())

	a := mustLookup(t, fs, "a")
	a.RemoveChild(f)
	Destroy(f)

	assert.True(t, dyn.IsDel())
	assert.True(t, b.IsEmpty())
	assert.Nil(t, hard.Target(), "hard link marker is left without a target")
	assert.False(t, hard.IsDel())
	assert.True(t, c.HasEntry(hard.Name()))
}

func TestFindHardLinked(t *testing.T) {
	t.Parallel()

	fs, f, b, _ := linkFixture(t)
	setup(t, fs.MakeDir(`a\x`), fs.MakeDir(`a\x\y`))
	a := mustLookup(t, fs, "a")
	y := mustLookup(t, fs, `a\x\y`)

	assert.Nil(t, FindHardLinked(a))

	CreateHardLink(y, b)
	assert.Same(t, y, FindHardLinked(a))

	CreateHardLink(f, b)
	assert.Same(t, f, FindHardLinked(a), "files are visited before subdirectories")
	assert.Same(t, f, FindHardLinked(f))
}

func TestRetarget_RenamesSubtreeLinks(t *testing.T) {
	t.Parallel()

	fs, f, b, _ := linkFixture(t)
	a := mustLookup(t, fs, "a")
	CreateDynamicLink(a, b)
	CreateDynamicLink(f, b)
	CreateHardLink(f, b)

	Retarget(a, `C:\z`)

	var names []string
	for _, n := range b.Files() {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{`dlink[C:\z\f.txt]`, `dlink[C:\z]`, `hlink[C:\a\f.txt]`}, names,
		"dynamic links follow, hard links keep their text")
	_, ok := b.GetFile(`dlink[C:\z]`)
	assert.True(t, ok, "renamed markers must be re-keyed in their directory")
}

func TestRetarget_DropsCollidingMarker(t *testing.T) {
	t.Parallel()

	fs, f, b, _ := linkFixture(t)
	setup(t, fs.MakeFile("g.txt"))
	g := mustLookup(t, fs, "g.txt")
	CreateDynamicLink(f, b)
	CreateDynamicLink(g, b)

	Retarget(f, `C:\g.txt`)

	require.Len(t, b.Files(), 1)
	assert.Same(t, g, b.Files()[0].Target())
	assert.Equal(t, 0, f.DynLinkCount())
	assert.Equal(t, 1, g.DynLinkCount())
}
