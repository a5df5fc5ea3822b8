// Package export renders the indexed notes to a static HTML site: one page
// per record, an index page built from the navigation tree, and a copy of
// every non-note asset under the content root. Export only reads the index;
// it never mutates it.
package export

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MonaAghili/public-notes/internal/errors"
	"github.com/MonaAghili/public-notes/internal/logfields"
	"github.com/MonaAghili/public-notes/internal/nav"
	"github.com/MonaAghili/public-notes/internal/note"
	"github.com/MonaAghili/public-notes/internal/slug"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/style.css
var styleCSS []byte

// Site carries the chrome shared by every rendered page.
type Site struct {
	Title       string
	Description string
	BaseURL     string
}

// Exporter writes the static site.
type Exporter struct {
	outDir string
	clean  bool
	site   Site
	tmpl   *template.Template
}

// navContext is the pipeline value the recursive nav template receives.
type navContext struct {
	Base  string
	Nodes []*nav.Node
}

// New creates an Exporter targeting outDir. With clean set, the output
// directory is removed before writing.
func New(outDir string, clean bool, site Site) (*Exporter, error) {
	if site.Title == "" {
		site.Title = "Notes"
	}
	tmpl := template.New("export").Funcs(template.FuncMap{
		"navctx": func(base string, nodes []*nav.Node) navContext {
			return navContext{Base: base, Nodes: nodes}
		},
	})
	tmpl, err := tmpl.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.InternalError("parsing export templates failed", err)
	}
	return &Exporter{outDir: outDir, clean: clean, site: site, tmpl: tmpl}, nil
}

// pageData is the page template's dot.
type pageData struct {
	Site        Site
	Base        string
	Tree        []*nav.Node
	Title       string
	Description string
	Date        *time.Time
	Tags        []string
	Body        template.HTML
}

// indexData is the index template's dot.
type indexData struct {
	Site Site
	Base string
	Tree []*nav.Node
}

// Export renders every record plus the index page and copies assets from
// contentRoot. The tree and records come from a completed index load.
func (e *Exporter) Export(tree []*nav.Node, records []*note.Record, contentRoot string) error {
	start := time.Now()

	if e.clean {
		if err := os.RemoveAll(e.outDir); err != nil {
			return errors.ExportFailed(e.outDir, err)
		}
	}
	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return errors.ExportFailed(e.outDir, err)
	}

	for _, rec := range records {
		if err := e.writePage(tree, rec); err != nil {
			return err
		}
	}
	if err := e.writeIndex(tree); err != nil {
		return err
	}
	if err := e.writeStyle(); err != nil {
		return err
	}
	if err := e.copyAssets(contentRoot); err != nil {
		return err
	}

	slog.Info("static export complete",
		logfields.Path(e.outDir),
		logfields.Count(len(records)),
		logfields.Duration(time.Since(start)))
	return nil
}

// base returns the link prefix for a page depth segments below the output
// root, or the configured base URL when one is set.
func (e *Exporter) base(depth int) string {
	if e.site.BaseURL != "" {
		return strings.TrimSuffix(e.site.BaseURL, "/") + "/"
	}
	return strings.Repeat("../", depth)
}

func (e *Exporter) writePage(tree []*nav.Node, rec *note.Record) error {
	outPath := filepath.Join(e.outDir, filepath.FromSlash(rec.Slug)+".html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return errors.ExportFailed(outPath, err)
	}

	data := pageData{
		Site:        e.site,
		Base:        e.base(strings.Count(rec.Slug, "/")),
		Tree:        tree,
		Title:       rec.Title,
		Description: rec.Meta.Description,
		Tags:        rec.Meta.Tags,
		Body:        template.HTML(rec.HTML),
	}
	if !rec.Meta.Date.IsZero() {
		d := rec.Meta.Date
		data.Date = &d
	}

	return e.render(outPath, "page.html.tmpl", data)
}

func (e *Exporter) writeIndex(tree []*nav.Node) error {
	outPath := filepath.Join(e.outDir, "index.html")
	return e.render(outPath, "index.html.tmpl", indexData{
		Site: e.site,
		Base: e.base(0),
		Tree: tree,
	})
}

func (e *Exporter) render(outPath, name string, data any) error {
	f, err := os.Create(outPath)
	if err != nil {
		return errors.ExportFailed(outPath, err)
	}
	defer f.Close()

	if err := e.tmpl.ExecuteTemplate(f, name, data); err != nil {
		return errors.ExportFailed(outPath, err)
	}
	return nil
}

func (e *Exporter) writeStyle() error {
	assetDir := filepath.Join(e.outDir, "assets")
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return errors.ExportFailed(assetDir, err)
	}
	outPath := filepath.Join(assetDir, "style.css")
	if err := os.WriteFile(outPath, styleCSS, 0o644); err != nil {
		return errors.ExportFailed(outPath, err)
	}
	return nil
}

// copyAssets mirrors non-note regular files (images and the like) into the
// output tree, preserving relative paths. Hidden entries are skipped the
// same way the index walk skips them.
func (e *Exporter) copyAssets(contentRoot string) error {
	return filepath.WalkDir(contentRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.ExportFailed(path, err)
		}
		if path == contentRoot {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || slug.IsNotePath(d.Name()) {
			return nil
		}

		rel, rerr := filepath.Rel(contentRoot, path)
		if rerr != nil {
			return errors.ExportFailed(path, rerr)
		}
		return copyFile(path, filepath.Join(e.outDir, rel))
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.ExportFailed(dst, err)
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.ExportFailed(src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.ExportFailed(dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.ExportFailed(dst, err)
	}
	return nil
}
