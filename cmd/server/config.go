package main

import (
	"fmt"

	"github.com/projecthub/backend/config"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

// newConfigCommand 导出合并后的有效配置
func newConfigCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "将当前生效的配置写入 yaml 文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			if err := config.GetConfig().Save(output); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			klog.Infof("config written to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "config.yaml", "输出文件路径")
	return cmd
}
