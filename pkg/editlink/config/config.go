// Package config loads editlink session settings from HCL files. The
// format is intentionally small:
//
//	client {
//	  base_path = "${home}/projects/demo"
//	}
//
//	logging {
//	  level = "debug"
//	}
//
// The variables home and cwd are available in expressions.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Config holds the settings the editor client and CLI need at startup.
type Config struct {
	BasePath string
	LogLevel string
}

type fileConfig struct {
	Client  *clientBlock  `hcl:"client,block"`
	Logging *loggingBlock `hcl:"logging,block"`
}

type clientBlock struct {
	BasePath string `hcl:"base_path,optional"`
}

type loggingBlock struct {
	Level string `hcl:"level,optional"`
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Load reads and parses one HCL config file.
func Load(path string) (*Config, hcl.Diagnostics) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(file.Body, diags)
}

// Parse parses HCL config from a byte slice, for embedding and tests.
func Parse(src []byte, filename string) (*Config, hcl.Diagnostics) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decode(file.Body, diags)
}

func decode(body hcl.Body, diags hcl.Diagnostics) (*Config, hcl.Diagnostics) {
	var raw fileConfig
	diags = diags.Extend(gohcl.DecodeBody(body, evalContext(), &raw))
	if diags.HasErrors() {
		return nil, diags
	}

	cfg := Default()
	if raw.Client != nil {
		cfg.BasePath = raw.Client.BasePath
	}
	if raw.Logging != nil && raw.Logging.Level != "" {
		if !logLevels[raw.Logging.Level] {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid log level",
				Detail:   fmt.Sprintf("%q is not one of debug, info, warn, error", raw.Logging.Level),
			})
			return nil, diags
		}
		cfg.LogLevel = raw.Logging.Level
	}

	return cfg, diags
}

func evalContext() *hcl.EvalContext {
	home, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home": cty.StringVal(home),
			"cwd":  cty.StringVal(cwd),
		},
	}
}
