package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/ilweave/hashcache/weaver"
)

// fileConfig is the TOML shape of a weave config file. Every key is
// optional; missing keys fall back to the weaver defaults.
//
//	marker         = "CacheHashCode"
//	hash_method    = "GetHashCode"
//	compute_method = "__ComputeHashCode"
//	cache_field    = "__computedHash"
type fileConfig struct {
	Marker        string `toml:"marker"`
	HashMethod    string `toml:"hash_method"`
	ComputeMethod string `toml:"compute_method"`
	CacheField    string `toml:"cache_field"`
}

func loadConfig(path string) (weaver.Config, error) {
	if path == "" {
		return weaver.Config{}, nil
	}
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return weaver.Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return weaver.Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}
	return weaver.Config{
		Marker:        fc.Marker,
		HashMethod:    fc.HashMethod,
		ComputeMethod: fc.ComputeMethod,
		CacheField:    fc.CacheField,
	}, nil
}
