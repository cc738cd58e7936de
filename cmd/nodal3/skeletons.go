package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/2x3systems/nodal3/libnodal"
	"github.com/2x3systems/nodal3/libnodal/batch"
	"github.com/2x3systems/nodal3/libnodal/hashset"
	"github.com/2x3systems/nodal3/libnodal/topcom"
	"github.com/2x3systems/nodal3/nodal3"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

const stdinSource = "stdin.txt"

func newSkeletonsCmd() *cobra.Command {
	opts := nodal3.EnumOpts{OutDir: "."}
	var configPath string

	cmd := &cobra.Command{
		Use:   "skeletons",
		Short: "Compute skeleton classes of all nodal subdivisions reachable from TOPCOM triangulations and flips",
		Long: `Reads triangulations and flips of a lattice polygon with <genus> interior points and, for each
number of nodes from 1 to genus-3, writes the non-isomorphic skeletons (grouped by
loops:bridges:bi-edges:sprawling) to <out>/genus<g>/from_<tfile>.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if configPath != "" {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				cfg.applyTo(&opts, c.Flags())
			}
			return runSkeletons(opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Genus, "genus", "g", 0, "interior points of the lattice polygon (3 < genus < 9)")
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", opts.OutDir, "directory to write genus<g>/ batches into")
	cmd.Flags().StringVarP(&opts.InputPath, "tfile", "t", "", "TOPCOM triangulations and flips (stdin if empty or \"-\")")
	cmd.Flags().StringVarP(&opts.FilterDir, "filter-dir", "n", "", "directory of admissible hashes, genus<g>.txt")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML file with defaults for the above")

	return cmd
}

func runSkeletons(opts nodal3.EnumOpts) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	in, source, err := openInput(opts.InputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	klog.Infof("parsing triangulations and flips from %s", source)
	seed, err := topcom.Parse(in, source)
	if err != nil {
		return err
	}
	klog.Infof("parsed %d triangulation(s) and %d flip(s)", len(seed.Subdivisions), len(seed.Flips))
	if seed.DroppedFlips > 0 {
		klog.Warningf("dropped %d flip(s) that do not form a lattice parallelogram", seed.DroppedFlips)
	}

	var filters nodal3.FilterSource
	if opts.FilterDir != "" {
		filters = hashset.DirSource{Dir: opts.FilterDir}
	}

	out := &batch.DirWriter{
		OutDir: opts.OutDir,
		Source: source,
	}
	return libnodal.Enumerate(seed, opts, filters, out)
}

// openInput opens the triangulation input and returns the name its batches are written under.
func openInput(pathname string) (io.ReadCloser, string, error) {
	if pathname == "" || pathname == "-" {
		return io.NopCloser(os.Stdin), stdinSource, nil
	}

	file, err := os.Open(pathname)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to open %s", pathname)
	}
	return file, filepath.Base(pathname), nil
}
