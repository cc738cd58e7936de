package main

import (
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// fileConfig is the optional TOML file supplying defaults for the skeletons flags:
//
//	genus      = 6
//	out        = "out"
//	tfile      = "triangulations/genus6.txt"
//	filter_dir = "nontroplanar"
type fileConfig struct {
	Genus     int    `toml:"genus"`
	Out       string `toml:"out"`
	TFile     string `toml:"tfile"`
	FilterDir string `toml:"filter_dir"`
}

func loadConfig(pathname string) (fileConfig, error) {
	var cfg fileConfig
	md, err := toml.DecodeFile(pathname, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", pathname)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %s: unknown key %q", pathname, undecoded[0].String())
	}
	return cfg, nil
}

// applyTo fills in each option whose flag was not given explicitly.
func (cfg *fileConfig) applyTo(opts *nodal3.EnumOpts, flags *pflag.FlagSet) {
	if !flags.Changed("genus") && cfg.Genus != 0 {
		opts.Genus = cfg.Genus
	}
	if !flags.Changed("out") && cfg.Out != "" {
		opts.OutDir = cfg.Out
	}
	if !flags.Changed("tfile") && cfg.TFile != "" {
		opts.InputPath = cfg.TFile
	}
	if !flags.Changed("filter-dir") && cfg.FilterDir != "" {
		opts.FilterDir = cfg.FilterDir
	}
}
