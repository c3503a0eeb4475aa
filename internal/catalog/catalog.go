package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource []byte

//go:embed pages.cue
var builtinSource []byte

// Catalog is a set of compiled pages keyed by name.
type Catalog struct {
	ctx    *cue.Context
	schema cue.Value
	pages  map[string]*Page
	order  []string
}

// New returns an empty catalog.
func New() (*Catalog, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return &Catalog{ctx: ctx, schema: schema, pages: make(map[string]*Page)}, nil
}

// Default returns a catalog holding the built-in pages.
func Default() (*Catalog, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	if err := c.AddSource("pages.cue", builtinSource); err != nil {
		return nil, fmt.Errorf("built-in pages: %w", err)
	}
	if errs := c.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("built-in pages: %w", errs[0])
	}
	return c, nil
}

// AddSource compiles one CUE file of pages and adds them. A page name that
// is already present is an error; nothing from src is added in that case.
func (c *Catalog) AddSource(filename string, src []byte) error {
	v := c.ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return formatCUEError(err)
	}
	v = c.schema.Unify(v)

	pagesVal := v.LookupPath(cue.ParsePath("page"))
	if err := pagesVal.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}

	iter, err := pagesVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	var compiled []*Page
	for iter.Next() {
		p, err := CompilePage(iter.Value())
		if err != nil {
			return err
		}
		if _, dup := c.pages[p.Name]; dup {
			return &CompileError{
				Field:   "page." + p.Name,
				Message: fmt.Sprintf("page %q is already defined", p.Name),
				Pos:     iter.Value().Pos(),
			}
		}
		compiled = append(compiled, p)
	}
	if len(compiled) == 0 {
		return &CompileError{Field: "page", Message: "no pages defined", Pos: v.Pos()}
	}

	for _, p := range compiled {
		c.pages[p.Name] = p
		c.order = append(c.order, p.Name)
	}
	return nil
}

// LoadDir adds every .cue file under dir, in lexical path order.
func (c *Catalog) LoadDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("catalog directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no CUE files found in %s", dir)
	}
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := c.AddSource(path, src); err != nil {
			return err
		}
	}
	return nil
}

// FindCUEFiles walks dir and returns all .cue file paths, sorted.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// Page returns the page named name.
func (c *Catalog) Page(name string) (Page, bool) {
	p, ok := c.pages[name]
	if !ok {
		return Page{}, false
	}
	return *p, true
}

// Pages returns every page in the order it was added.
func (c *Catalog) Pages() []Page {
	out := make([]Page, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, *c.pages[name])
	}
	return out
}

// Names returns page names in the order they were added.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Validate checks every page and returns all problems found.
func (c *Catalog) Validate() []ValidationError {
	var errs []ValidationError
	for _, p := range c.Pages() {
		errs = append(errs, Validate(p)...)
	}
	return errs
}
