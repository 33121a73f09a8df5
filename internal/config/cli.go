// Package config defines the command line interface. Every flag can also be
// set from a JSON, YAML or TOML config file and from YAPIGEN_* variables.
package config

import "github.com/Alia5/yapigen/internal/cmd"

type Log struct {
	Level     string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"YAPIGEN_LOG_LEVEL"`
	File      string `help:"Write logs to this file in addition to stderr" env:"YAPIGEN_LOG_FILE"`
	Format    string `help:"Console log format: auto, text or json" default:"auto" enum:"auto,text,json" env:"YAPIGEN_LOG_FORMAT"`
	TraceFile string `help:"Write one line per created model element to this file" env:"YAPIGEN_LOG_TRACE_FILE"`
}

type CLI struct {
	ConfigFile string `name:"config" help:"Path to a JSON, YAML or TOML config file" type:"path" env:"YAPIGEN_CONFIG"`
	Log        Log    `embed:"" prefix:"log."`

	Build   cmd.Build         `cmd:"" help:"Build the API model of YANG modules"`
	Config  cmd.ConfigCommand `cmd:"" help:"Manage configuration files"`
	Version cmd.Version       `cmd:"" help:"Print the version"`
}
