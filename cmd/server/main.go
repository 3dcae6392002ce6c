package main

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		klog.Errorf("command failed: %v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "projecthub",
		Short:         "项目跟踪后端服务",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	root.AddCommand(newServeCommand(), newMatchCommand(), newConfigCommand())
	return root
}
