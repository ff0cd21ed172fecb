package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/pyroxy"
	"github.com/fwojciec/pyroxy/fs"
	"github.com/fwojciec/pyroxy/goquery"
	"github.com/fwojciec/pyroxy/index"
)

// Run executes the filter command. The filtered page goes to stdout and a
// per-category summary to stderr.
func (c *FilterCmd) Run(deps *Dependencies) error {
	raw, err := c.read(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pyroxy.ErrorMessage(err))
		return err
	}

	if deps.Config.IsWhitelisted(c.Package) {
		fmt.Fprintf(deps.Stderr, "%s is whitelisted and served unfiltered\n", c.Package)
		_, err := deps.Stdout.Write(raw)
		return err
	}

	f := &index.Filter{Config: deps.Config, Parser: goquery.NewParser()}
	idx, err := f.FilterIndex(deps.Ctx, c.Package, raw)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pyroxy.ErrorMessage(err))
		return err
	}

	if _, err := deps.Stdout.Write(idx.Body); err != nil {
		return err
	}

	for _, cat := range pyroxy.LinkCategories {
		fmt.Fprintf(deps.Stderr, "%-18s %d\n", cat, len(idx.Links[cat]))
	}
	removed := make([]string, len(idx.Removed))
	for i, cat := range idx.Removed {
		removed[i] = cat.String()
	}
	if len(removed) == 0 {
		removed = append(removed, "none")
	}
	fmt.Fprintf(deps.Stderr, "removed %d of %d links (%s)\n", idx.RemovedCount(), idx.Links.Len(), strings.Join(removed, ", "))
	return nil
}

func (c *FilterCmd) read(deps *Dependencies) ([]byte, error) {
	if c.File != "" {
		return os.ReadFile(c.File)
	}
	if err := index.ValidatePackageName(c.Package); err != nil {
		return nil, err
	}
	root, err := webPath(deps.Config)
	if err != nil {
		return nil, err
	}
	return fs.NewRepository(root).ReadIndex(deps.Ctx, c.Package)
}
