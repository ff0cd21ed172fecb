package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/pyroxy"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Config *pyroxy.Config
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigFile string `name:"config" short:"c" env:"PYROXY_CONFIG" type:"path" help:"Path to the INI config file"`
	LogLevel   string `name:"log-level" help:"Log level (debug, info, warn, error); overrides log_level"`

	Serve  ServeCmd  `cmd:"" help:"Serve the mirror"`
	Filter FilterCmd `cmd:"" help:"Filter a package index page and print the result"`
	Config ConfigCmd `cmd:"" help:"Show the options resolved for a package"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Host string `help:"Listen host; overrides the host option"`
	Port int    `help:"Listen port; overrides the port option"`
}

// FilterCmd is the "filter" subcommand.
type FilterCmd struct {
	Package string `arg:"" help:"Package name"`
	File    string `arg:"" optional:"" type:"existingfile" help:"Index page to filter instead of the mirror's"`
}

// ConfigCmd is the "config" subcommand.
type ConfigCmd struct {
	Package string `arg:"" optional:"" help:"Package name; shows global options when omitted"`
}
