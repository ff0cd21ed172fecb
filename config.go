package pyroxy

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Option names recognized by the mirror.
const (
	OptionAllowedExtensions   = "allowed_extensions"
	OptionWhitelistedPackages = "whitelisted_packages"
	OptionWebPath             = "pypi_web_path"
	OptionPackagesPath        = "pypi_packages_path"
	OptionHost                = "host"
	OptionPort                = "port"
	OptionLogLevel            = "log_level"
	OptionDebug               = "debug"
	OptionMetricsAddr         = "metrics_addr"
	OptionRateLimit           = "rate_limit"
	OptionRateBurst           = "rate_burst"
)

// listOptions are stored as comma-separated strings and split once when the
// Config is built. The value reports whether entries are also lower-cased.
var listOptions = map[string]bool{
	OptionAllowedExtensions:   false,
	OptionWhitelistedPackages: true,
}

// Config holds the global options and per-package overrides of a mirror.
// A Config is immutable once built and safe for concurrent use.
type Config struct {
	global   options
	packages map[string]options
}

type options struct {
	values map[string]string
	lists  map[string][]string
}

// NewConfig builds a Config from the global options and the per-package
// overrides. Package names are matched case-insensitively. The input maps
// are copied.
func NewConfig(global map[string]string, packages map[string]map[string]string) *Config {
	c := &Config{
		global:   newOptions(global),
		packages: make(map[string]options, len(packages)),
	}
	for name, values := range packages {
		key := strings.ToLower(name)
		if existing, ok := c.packages[key]; ok {
			merged := maps.Clone(existing.values)
			maps.Copy(merged, values)
			values = merged
		}
		c.packages[key] = newOptions(values)
	}
	return c
}

func newOptions(values map[string]string) options {
	o := options{
		values: make(map[string]string, len(values)),
		lists:  make(map[string][]string),
	}
	for k, v := range values {
		o.values[k] = v
		if lower, ok := listOptions[k]; ok {
			o.lists[k] = splitList(v, lower)
		}
	}
	return o
}

// splitList splits a comma-separated option value, trimming each entry and
// dropping empty ones.
func splitList(value string, lower bool) []string {
	list := []string{}
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if lower {
			entry = strings.ToLower(entry)
		}
		list = append(list, entry)
	}
	return list
}

// Lookup resolves an option for a package: the package's own section first,
// then the global options. It returns false if the option is defined in
// neither, which callers treat as "no restriction configured".
func (c *Config) Lookup(packageName, option string) (string, bool) {
	if pkg, ok := c.packages[strings.ToLower(packageName)]; ok {
		if v, ok := pkg.values[option]; ok {
			return v, true
		}
	}
	return c.Get(option)
}

// LookupList is like Lookup for options holding comma-separated lists.
func (c *Config) LookupList(packageName, option string) ([]string, bool) {
	if pkg, ok := c.packages[strings.ToLower(packageName)]; ok {
		if list, ok := pkg.list(option); ok {
			return list, true
		}
	}
	return c.global.list(option)
}

func (o options) list(option string) ([]string, bool) {
	if list, ok := o.lists[option]; ok {
		return list, true
	}
	v, ok := o.values[option]
	if !ok {
		return nil, false
	}
	return splitList(v, false), true
}

// Get returns a global option.
func (c *Config) Get(option string) (string, bool) {
	v, ok := c.global.values[option]
	return v, ok
}

// List returns a global list option, or nil if it is undefined.
func (c *Config) List(option string) []string {
	list, _ := c.global.list(option)
	return list
}

// Bool returns a global option coerced to a boolean. Accepted values are
// true/yes/on/y/t/1 and false/no/off/n/f/0, case-insensitively.
// Returns EINVALID if the value is not one of them.
func (c *Config) Bool(option string) (value bool, ok bool, err error) {
	v, ok := c.Get(option)
	if !ok {
		return false, false, nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "on", "y", "t", "1":
		return true, true, nil
	case "false", "no", "off", "n", "f", "0":
		return false, true, nil
	}
	return false, true, Errorf(EINVALID, "could not coerce %s=%q to true/false", option, v)
}

// Int returns a global option parsed as an integer.
func (c *Config) Int(option string) (int, bool, error) {
	v, ok := c.Get(option)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, true, Errorf(EINVALID, "option %s=%q is not an integer", option, v)
	}
	return n, true, nil
}

// Float returns a global option parsed as a floating point number.
func (c *Config) Float(option string) (float64, bool, error) {
	v, ok := c.Get(option)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, true, Errorf(EINVALID, "option %s=%q is not a number", option, v)
	}
	return f, true, nil
}

// IsWhitelisted reports whether a package bypasses link filtering.
func (c *Config) IsWhitelisted(packageName string) bool {
	return slices.Contains(c.List(OptionWhitelistedPackages), strings.ToLower(packageName))
}

// Packages returns the lower-cased names of packages with their own
// section, sorted.
func (c *Config) Packages() []string {
	return slices.Sorted(maps.Keys(c.packages))
}

// Resolved returns every option visible to a package, with package
// overrides applied over the global options.
func (c *Config) Resolved(packageName string) map[string]string {
	resolved := maps.Clone(c.global.values)
	if pkg, ok := c.packages[strings.ToLower(packageName)]; ok {
		maps.Copy(resolved, pkg.values)
	}
	return resolved
}
