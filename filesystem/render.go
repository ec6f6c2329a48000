package filesystem

import (
	"bufio"
	"io"
	"strings"
)

// Render writes the tree depth first: each directory's name, then one level
// deeper its file entries and then its subdirectories, all in name order.
func (fs *FileSystem) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	renderDir(bw, fs.root, 0, fs.cfg.Indent)
	return bw.Flush()
}

// String returns the rendered tree
func (fs *FileSystem) String() string {
	var sb strings.Builder
	_ = fs.Render(&sb)
	return sb.String()
}

func renderDir(w *bufio.Writer, dir *Node, depth, indent int) {
	writeLine(w, dir.name, depth, indent)
	for _, f := range dir.Files() {
		writeLine(w, f.name, depth+1, indent)
	}
	for _, d := range dir.Dirs() {
		renderDir(w, d, depth+1, indent)
	}
}

func writeLine(w *bufio.Writer, name string, depth, indent int) {
	w.WriteString(strings.Repeat(" ", depth*indent))
	w.WriteString(name)
	w.WriteByte('\n')
}
