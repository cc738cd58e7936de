package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

func main() {
	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	root := &cobra.Command{
		Use:          "nodal3",
		Short:        "nodal3 enumerates trivalent graphs dual to nodal subdivisions of lattice polygons",
		SilenceUsage: true,
	}
	root.PersistentFlags().AddGoFlagSet(fset)
	root.AddCommand(newSkeletonsCmd())

	err := root.Execute()
	if err != nil {
		klog.Errorf("%v", err)
	}
	klog.Flush()

	if err != nil {
		os.Exit(1)
	}
}
