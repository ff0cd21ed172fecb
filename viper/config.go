// Package viper loads mirror configuration files with spf13/viper.
package viper

import (
	"os"
	"strings"

	"github.com/fwojciec/pyroxy"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// Section names of a configuration file.
const (
	MainSection          = "main"
	PackageSectionPrefix = "package_"
)

// defaultSection holds options inherited by [main] and every package
// section, as viper reports it.
var defaultSection = strings.ToLower(ini.DefaultSection)

// EnvPrefix prefixes environment variables overriding file options, e.g.
// PYROXY_MAIN_PORT or PYROXY_PACKAGE_FLASK_ALLOWED_EXTENSIONS.
const EnvPrefix = "PYROXY"

// keyDelimiter separates sections from options. Package names may contain
// dots, so viper's default delimiter cannot be used.
const keyDelimiter = "::"

// Load reads the INI file at path. Global options come from the [main]
// section and per-package overrides from [package_<name>] sections; other
// sections are ignored. Options in [DEFAULT] apply to [main] and every
// package section unless the section sets them itself. Environment
// variables override options present in the file.
func Load(path string) (*pyroxy.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, pyroxy.Errorf(pyroxy.ENOTFOUND, "config file %q not found", path)
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_", ".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, pyroxy.Errorf(pyroxy.EINVALID, "failed to read config %q: %v", path, err)
	}

	sections, err := ini.Load(path)
	if err != nil {
		return nil, pyroxy.Errorf(pyroxy.EINVALID, "failed to read config %q: %v", path, err)
	}
	if !sections.HasSection(MainSection) {
		return nil, pyroxy.Errorf(pyroxy.EINVALID, "config %q has no [%s] section", path, MainSection)
	}

	defaults := make(map[string]string)
	global := make(map[string]string)
	packages := make(map[string]map[string]string)
	for _, name := range sections.SectionStrings() {
		name = strings.ToLower(name)
		if strings.HasPrefix(name, PackageSectionPrefix) {
			packages[strings.TrimPrefix(name, PackageSectionPrefix)] = make(map[string]string)
		}
	}
	for _, key := range v.AllKeys() {
		section, option, ok := strings.Cut(key, keyDelimiter)
		if !ok {
			continue
		}
		value, err := cast.ToStringE(v.Get(key))
		if err != nil {
			return nil, pyroxy.Errorf(pyroxy.EINVALID, "option %q in [%s]: %v", option, section, err)
		}

		switch {
		case section == defaultSection:
			defaults[option] = value
		case section == MainSection:
			global[option] = value
		case strings.HasPrefix(section, PackageSectionPrefix):
			name := strings.TrimPrefix(section, PackageSectionPrefix)
			if packages[name] == nil {
				packages[name] = make(map[string]string)
			}
			packages[name][option] = value
		}
	}

	inherit(global, defaults)
	for _, options := range packages {
		inherit(options, defaults)
	}
	return pyroxy.NewConfig(global, packages), nil
}

// inherit copies defaults into options that are not set.
func inherit(options, defaults map[string]string) {
	for option, value := range defaults {
		if _, ok := options[option]; !ok {
			options[option] = value
		}
	}
}
