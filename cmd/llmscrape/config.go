package main

import (
	"errors"
	"io"

	"github.com/alecthomas/kong"
	llmtext "github.com/ivo-toby/llm-text-scraper"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the flags that can be set through --config. Keys match
// the flag names. Booleans are pointers so an absent key is distinguishable
// from an explicit false.
type fileConfig struct {
	BaseURL        string   `yaml:"base-url"`
	FilterPath     string   `yaml:"filter-path"`
	CustomSelector []string `yaml:"custom-selector"`
	Output         string   `yaml:"output"`
	CacheDir       string   `yaml:"cache-dir"`
	Cache          string   `yaml:"cache"`
	NoCache        *bool    `yaml:"no-cache"`
	Static         *bool    `yaml:"static"`
	Sitemap        *bool    `yaml:"sitemap"`
	Markdown       *bool    `yaml:"markdown"`
	Delay          string   `yaml:"delay"`
	RenderDelay    string   `yaml:"render-delay"`
	Timeout        string   `yaml:"timeout"`
	MaxPages       int      `yaml:"max-pages"`
	Formatter      string   `yaml:"formatter"`
	Model          string   `yaml:"model"`
}

// yamlConfig loads a YAML config file into a Kong resolver. File values act
// as flag defaults: explicit command-line flags take precedence. Unknown
// keys are rejected.
func yamlConfig(r io.Reader) (kong.Resolver, error) {
	var cfg fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, llmtext.Errorf(llmtext.EINVALID, "invalid config file: %v", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (interface{}, error) {
		return cfg.valueOf(flag.Name), nil
	}), nil
}

// valueOf returns the config value for a flag, or nil when the file does
// not set it.
func (c *fileConfig) valueOf(flag string) interface{} {
	switch flag {
	case "base-url":
		return stringOrNil(c.BaseURL)
	case "filter-path":
		return stringOrNil(c.FilterPath)
	case "custom-selector":
		if len(c.CustomSelector) == 0 {
			return nil
		}
		vals := make([]interface{}, len(c.CustomSelector))
		for i, s := range c.CustomSelector {
			vals[i] = s
		}
		return vals
	case "output":
		return stringOrNil(c.Output)
	case "cache-dir":
		return stringOrNil(c.CacheDir)
	case "cache":
		return stringOrNil(c.Cache)
	case "no-cache":
		return boolOrNil(c.NoCache)
	case "static":
		return boolOrNil(c.Static)
	case "sitemap":
		return boolOrNil(c.Sitemap)
	case "markdown":
		return boolOrNil(c.Markdown)
	case "delay":
		return stringOrNil(c.Delay)
	case "render-delay":
		return stringOrNil(c.RenderDelay)
	case "timeout":
		return stringOrNil(c.Timeout)
	case "max-pages":
		if c.MaxPages == 0 {
			return nil
		}
		return c.MaxPages
	case "formatter":
		return stringOrNil(c.Formatter)
	case "model":
		return stringOrNil(c.Model)
	}
	return nil
}

func stringOrNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolOrNil(b *bool) interface{} {
	if b == nil {
		return nil
	}
	return *b
}
