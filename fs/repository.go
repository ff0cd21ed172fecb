// Package fs provides the local mirror tree and its simple index pages.
package fs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fwojciec/pyroxy"
)

// Compile-time interface verification.
var (
	_ pyroxy.IndexSource = (*Repository)(nil)
	_ pyroxy.FileTree    = (*Repository)(nil)
)

// IndexFile is the name of a package's simple index page.
const IndexFile = "index.html"

// Repository serves a mirror laid out like a package index web root:
// simple/<package>/index.html pages next to the package files.
type Repository struct {
	root     string
	resolved string // root with symlinks resolved
}

// NewRepository creates a Repository rooted at dir.
func NewRepository(dir string) *Repository {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = filepath.Clean(dir)
	}
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		resolved = root
	}
	return &Repository{root: root, resolved: resolved}
}

// Root returns the absolute root directory.
func (r *Repository) Root() string {
	return r.root
}

// resolve maps a slash-separated path onto the root and refuses paths that
// end up outside of it, either lexically or through symbolic links.
// Paths that do not exist are returned as is.
func (r *Repository) resolve(path string) (string, error) {
	full := filepath.Join(r.root, filepath.FromSlash(path))
	if !within(r.root, full) {
		return "", pyroxy.Errorf(pyroxy.EFORBIDDEN, "path %q is outside the mirror root", path)
	}
	target, err := filepath.EvalSymlinks(full)
	if err != nil {
		return full, nil
	}
	if !within(r.resolved, target) {
		return "", pyroxy.Errorf(pyroxy.EFORBIDDEN, "path %q links outside the mirror root", path)
	}
	return full, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ReadIndex reads simple/<packageName>/index.html. The package name is used
// as is, so lookups are case-sensitive where the filesystem is.
func (r *Repository) ReadIndex(ctx context.Context, packageName string) ([]byte, error) {
	path, err := r.resolve(filepath.Join("simple", packageName, IndexFile))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pyroxy.Errorf(pyroxy.ENOTFOUND, "no index for package %q", packageName)
	}
	return data, nil
}

// Stat describes the file at path.
func (r *Repository) Stat(ctx context.Context, path string) (*pyroxy.FileInfo, error) {
	full, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(full)
	if err != nil {
		return nil, statError(path, err)
	}
	return fileInfo(fi), nil
}

// Open opens a regular file for reading.
func (r *Repository) Open(ctx context.Context, path string) (io.ReadSeekCloser, *pyroxy.FileInfo, error) {
	full, err := r.resolve(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		return nil, nil, statError(path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, nil, pyroxy.Errorf(pyroxy.ENOTFOUND, "%q is a directory", path)
	}
	return f, fileInfo(fi), nil
}

// List returns the entries of a directory sorted by name. Symbolic links
// are described by their targets; entries that vanish while listing are
// skipped.
func (r *Repository) List(ctx context.Context, path string) ([]*pyroxy.FileInfo, error) {
	full, err := r.resolve(path)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, statError(path, err)
	}

	infos := make([]*pyroxy.FileInfo, 0, len(entries))
	for _, entry := range entries {
		fi, err := os.Stat(filepath.Join(full, entry.Name()))
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo(fi))
	}
	return infos, nil
}

func fileInfo(fi fs.FileInfo) *pyroxy.FileInfo {
	return &pyroxy.FileInfo{
		Name:    fi.Name(),
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		IsDir:   fi.IsDir(),
	}
}

func statError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return pyroxy.Errorf(pyroxy.ENOTFOUND, "%q not found", path)
	}
	if errors.Is(err, fs.ErrPermission) {
		return pyroxy.Errorf(pyroxy.EFORBIDDEN, "%q is not readable", path)
	}
	return err
}
