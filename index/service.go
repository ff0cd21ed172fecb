package index

import (
	"context"
	"strings"

	"github.com/fwojciec/pyroxy"
)

var _ pyroxy.PackageIndexService = (*Service)(nil)

// Service serves package index pages from a source, bypassing the filter
// for whitelisted packages.
type Service struct {
	Config *pyroxy.Config
	Source pyroxy.IndexSource
	Filter pyroxy.IndexFilter
}

// PackageIndex returns the index page for packageName. The name is used
// verbatim to read the source; the whitelist check ignores case.
func (s *Service) PackageIndex(ctx context.Context, packageName string) (*pyroxy.PackageIndex, error) {
	if err := ValidatePackageName(packageName); err != nil {
		return nil, err
	}

	raw, err := s.Source.ReadIndex(ctx, packageName)
	if err != nil {
		return nil, err
	}

	if s.Config.IsWhitelisted(packageName) {
		return &pyroxy.PackageIndex{Name: packageName, Body: raw}, nil
	}

	filtered, err := s.Filter.FilterIndex(ctx, packageName, raw)
	if err != nil {
		return nil, err
	}
	return &pyroxy.PackageIndex{Name: packageName, Body: filtered.Body, Filtered: true}, nil
}

// ValidatePackageName returns EINVALID for names that cannot name a
// single directory under the simple index.
func ValidatePackageName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return pyroxy.Errorf(pyroxy.EINVALID, "invalid package name %q", name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return pyroxy.Errorf(pyroxy.EINVALID, "invalid package name %q", name)
	}
	return nil
}
