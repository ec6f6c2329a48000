package filesystem

import (
	"strings"
)

// Separator delimits path segments
const Separator = '\\'

// Resolver turns user supplied paths into normalized absolute paths and
// resolves them against the directory tree rooted at root.
//
// Link marker names embed whole paths inside brackets (`dlink[C:\a\b]`), so
// every segment scan here treats separators between '[' and ']' as part of
// the name.
type Resolver struct {
	root       *Node
	drive      string // root name, e.g. "C:"
	maxBaseLen int
	maxExtLen  int
}

func NewResolver(root *Node, maxBaseLen, maxExtLen int) *Resolver {
	return &Resolver{
		root:       root,
		drive:      root.name,
		maxBaseLen: maxBaseLen,
		maxExtLen:  maxExtLen,
	}
}

// IsAbs reports whether p starts with the drive designator (case-insensitive),
// either alone or followed by a separator.
func (r *Resolver) IsAbs(p string) bool {
	if len(p) < len(r.drive) || !strings.EqualFold(p[:len(r.drive)], r.drive) {
		return false
	}
	return len(p) == len(r.drive) || p[len(r.drive)] == Separator
}

// Abs returns the normalized absolute form of p. Relative paths are appended
// to cwd. The drive designator is canonicalized and trailing separators are
// dropped.
func (r *Resolver) Abs(p, cwd string) string {
	if r.IsAbs(p) {
		p = r.drive + p[len(r.drive):]
	} else {
		p = cwd + string(Separator) + p
	}
	for len(p) > len(r.drive) && p[len(p)-1] == Separator {
		p = p[:len(p)-1]
	}
	return p
}

// Split splits p at its last segment boundary into the parent path and the
// leaf name. Scanning runs right to left: ']' enters a bracketed range and
// '[' leaves it; separators inside brackets are not boundaries.
// A path without a boundary returns an empty parent.
func Split(p string) (parent, name string) {
	inside := false
	for i := len(p) - 1; i >= 0; i-- {
		switch p[i] {
		case ']':
			inside = true
		case '[':
			inside = false
		case Separator:
			if !inside {
				return p[:i], p[i+1:]
			}
		}
	}
	return "", p
}

// Join is the inverse of [Split]
func Join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + string(Separator) + name
}

// Tokenize splits p into its segments, honoring brackets the same way as
// [Split]. Empty segments are skipped.
func Tokenize(p string) []string {
	var (
		segs   []string
		start  int
		inside bool
	)
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '[':
			inside = true
		case ']':
			inside = false
		case Separator:
			if !inside {
				if i > start {
					segs = append(segs, p[start:i])
				}
				start = i + 1
			}
		}
	}
	if start < len(p) {
		segs = append(segs, p[start:])
	}
	return segs
}

// Resolve walks the directory tree along abs and returns the directory it
// names. Only subdirectory collections are followed; file entries and links
// never resolve. Returns nil for an empty path, a foreign drive or any
// missing segment.
func (r *Resolver) Resolve(abs string) *Node {
	segs := Tokenize(abs)
	if len(segs) == 0 || !strings.EqualFold(segs[0], r.drive) {
		return nil
	}
	cur := r.root
	for _, name := range segs[1:] {
		next, ok := cur.GetDir(name)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Contains reports whether abs names other or one of its ancestors,
// comparing whole segments.
func Contains(abs, other string) bool {
	outer, inner := Tokenize(abs), Tokenize(other)
	if len(outer) > len(inner) {
		return false
	}
	for i := range outer {
		if i == 0 {
			if !strings.EqualFold(outer[i], inner[i]) {
				return false
			}
			continue
		}
		if outer[i] != inner[i] {
			return false
		}
	}
	return true
}

// IsValidName checks a leaf name against the naming rule: ASCII letters and
// digits with at most one period splitting base name and extension. The
// period splits nearest the end; a name starting with the period is treated
// as all base name. The drive name is always valid.
func (r *Resolver) IsValidName(name string) bool {
	if strings.EqualFold(name, r.drive) {
		return true
	}
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return false
		}
	}
	base, ext := name, ""
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		base, ext = name[:dot], name[dot+1:]
	}
	if base == "" {
		base, ext = ext, ""
	}
	if base == "" || strings.IndexByte(base, '.') >= 0 {
		return false
	}
	return len(base) <= r.maxBaseLen && len(ext) <= r.maxExtLen
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '.'
}
