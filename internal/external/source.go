package external

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/projecthub/backend/internal/model"
	"k8s.io/klog/v2"
)

// Source 只读的外部记录数据源
type Source interface {
	List(ctx context.Context) ([]model.ExternalRecord, error)
}

// FileSource 从 JSON 文件读取外部记录，每次调用都重新读取文件
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) List(ctx context.Context) ([]model.ExternalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read external data %s: %w", s.Path, err)
	}
	var records []model.ExternalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode external data %s: %w", s.Path, err)
	}
	klog.V(6).Infof("loaded %d external records from %s", len(records), s.Path)
	return records, nil
}

// StaticSource 内存数据源，用于测试和命令行注入
type StaticSource struct {
	Records []model.ExternalRecord
	Err     error
}

func (s *StaticSource) List(ctx context.Context) ([]model.ExternalRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.ExternalRecord, len(s.Records))
	copy(out, s.Records)
	return out, nil
}
