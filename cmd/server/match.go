package main

import (
	"encoding/json"
	"fmt"

	"github.com/projecthub/backend/config"
	"github.com/projecthub/backend/internal/model"
	"github.com/spf13/cobra"
)

// newMatchCommand 在命令行执行一次匹配，可选直接入库
func newMatchCommand() *cobra.Command {
	var (
		projectID uint
		by        string
		ingest    bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "按关键词或项目代号匹配外部数据",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID == 0 {
				return fmt.Errorf("--project-id is required")
			}
			mode := model.MatchMode(by)
			if mode != model.MatchByKeyword && mode != model.MatchByCode {
				return fmt.Errorf("--by must be %q or %q", model.MatchByKeyword, model.MatchByCode)
			}

			a, err := newApp(config.GetConfig())
			if err != nil {
				return err
			}

			var result any
			if ingest {
				result, err = a.matching.IngestMatches(cmd.Context(), projectID, mode)
			} else {
				result, err = a.matching.FindMatches(cmd.Context(), projectID, mode)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().UintVar(&projectID, "project-id", 0, "项目ID")
	cmd.Flags().StringVar(&by, "by", string(model.MatchByKeyword), "匹配方式: keyword 或 code")
	cmd.Flags().BoolVar(&ingest, "ingest", false, "匹配结果写入条目")
	return cmd
}
