package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partial configs from independent sources and
// folds them into one StructuredConfig. Source errors are collected instead
// of aborting, so build reports all of them at once.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{}
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		envCfg := &StructuredConfig{}
		return envCfg, parseEnv(envCfg)
	})
}

func (b *configBuilder) withFlags() *configBuilder {
	return b.add(func() (*StructuredConfig, error) {
		return ParseFlags(), nil
	})
}

// withJSON reads the optional JSON file. The path comes from the sources
// already collected, so this must run after withEnv and withFlags.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}

	return b.add(func() (*StructuredConfig, error) {
		return parseJSON(path)
	})
}

func (b *configBuilder) add(source func() (*StructuredConfig, error)) *configBuilder {
	cfg, err := source()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder) jsonPath() string {
	path := ""
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			path = cfg.JSONFilePath
		}
	}
	return path
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("collect config sources: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(merged, cfg); err != nil {
			return nil, fmt.Errorf("merge config sources: %w", err)
		}
	}

	return merged, merged.validate()
}
