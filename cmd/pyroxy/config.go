package main

import (
	"fmt"
	"maps"
	"slices"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	resolved := deps.Config.Resolved(c.Package)
	for _, key := range slices.Sorted(maps.Keys(resolved)) {
		fmt.Fprintf(deps.Stdout, "%s = %s\n", key, resolved[key])
	}

	if c.Package == "" {
		if packages := deps.Config.Packages(); len(packages) > 0 {
			fmt.Fprintln(deps.Stdout)
			fmt.Fprintln(deps.Stdout, "packages:")
			for _, name := range packages {
				fmt.Fprintf(deps.Stdout, "  %s\n", name)
			}
		}
		return nil
	}

	if deps.Config.IsWhitelisted(c.Package) {
		fmt.Fprintf(deps.Stdout, "\n%s is whitelisted\n", c.Package)
	}
	return nil
}
