// Package nav builds the navigation tree for the query surface and the
// static export. The tree is a pure function of the content directory and
// the current store; it is rebuilt wholesale after every change, never
// patched in place.
package nav

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/slug"
)

// NodeKind distinguishes folder nodes from file nodes.
type NodeKind string

const (
	KindFolder NodeKind = "folder"
	KindFile   NodeKind = "file"
)

// Node is one entry in the navigation tree. File nodes carry the note slug
// in Path and a display title; folder nodes carry their children.
type Node struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Kind     NodeKind `json:"kind"`
	Title    string   `json:"title,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// TitleFunc resolves the display title for a slug. The second return is
// false when no record is known, in which case the file name stands in.
type TitleFunc func(slug string) (string, bool)

// Builder walks the content root into a tree. Not safe for concurrent use;
// the synchronizer owns one and serializes rebuilds through its queue.
type Builder struct {
	coll     *collate.Collator
	titleFor TitleFunc
}

// NewBuilder creates a Builder resolving titles through titleFor. Sorting
// uses the Unicode default collation so sibling order matches what a
// file browser with locale-aware sorting shows.
func NewBuilder(titleFor TitleFunc) *Builder {
	if titleFor == nil {
		titleFor = func(string) (string, bool) { return "", false }
	}
	return &Builder{
		coll:     collate.New(language.Und),
		titleFor: titleFor,
	}
}

// Build walks root and returns its tree. Any directory read failure aborts
// the whole build so a half-walked tree is never published.
func (b *Builder) Build(root string) ([]*Node, error) {
	return b.buildDir(root, "")
}

func (b *Builder) buildDir(absDir, relDir string) ([]*Node, error) {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, errors.WalkFailed(absDir, err)
	}

	var folders, files []*Node
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			childRel := path.Join(relDir, name)
			children, err := b.buildDir(filepath.Join(absDir, name), childRel)
			if err != nil {
				return nil, err
			}
			folders = append(folders, &Node{
				Name:     name,
				Path:     childRel,
				Kind:     KindFolder,
				Children: children,
			})
			continue
		}

		if !entry.Type().IsRegular() || !slug.IsNotePath(name) {
			continue
		}

		noteSlug := slug.FromPath(path.Join(relDir, name))
		display := strings.TrimSuffix(name, filepath.Ext(name))
		if title, ok := b.titleFor(noteSlug); ok && strings.TrimSpace(title) != "" {
			display = title
		}
		files = append(files, &Node{
			Name:  strings.TrimSuffix(name, filepath.Ext(name)),
			Path:  noteSlug,
			Kind:  KindFile,
			Title: display,
		})
	}

	b.sortNodes(folders)
	b.sortNodes(files)
	return append(folders, files...), nil
}

// sortNodes orders siblings of one kind ascending by name. Folders always
// precede files because the caller concatenates the two runs.
func (b *Builder) sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return b.coll.CompareString(nodes[i].Name, nodes[j].Name) < 0
	})
}

// Walk visits every node depth-first, folders before their children.
func Walk(nodes []*Node, visit func(*Node)) {
	for _, node := range nodes {
		visit(node)
		Walk(node.Children, visit)
	}
}

// CountFiles returns the number of file nodes in the tree.
func CountFiles(nodes []*Node) int {
	count := 0
	Walk(nodes, func(n *Node) {
		if n.Kind == KindFile {
			count++
		}
	})
	return count
}
