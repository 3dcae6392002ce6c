package service

import (
	"context"
	"strings"

	"github.com/projecthub/backend/internal/external"
	"github.com/projecthub/backend/internal/model"
	"k8s.io/klog/v2"
)

// Matcher 将外部记录与项目资料进行匹配，不产生写操作
type Matcher struct {
	source external.Source
}

func NewMatcher(source external.Source) *Matcher {
	return &Matcher{source: source}
}

// Match 按模式分发
func (m *Matcher) Match(ctx context.Context, mode model.MatchMode, project *model.Project, materials []model.ProjectMaterial) []model.Match {
	if mode == model.MatchByCode {
		return m.MatchByCode(ctx, project, materials)
	}
	return m.MatchByKeyword(ctx, project, materials)
}

// MatchByKeyword 标题或正文包含任一关键字（忽略大小写）即匹配，每条记录最多产生一个结果
func (m *Matcher) MatchByKeyword(ctx context.Context, project *model.Project, materials []model.ProjectMaterial) []model.Match {
	keywords := project.Keywords()
	if len(keywords) == 0 || len(materials) == 0 {
		return nil
	}
	records := m.loadRecords(ctx)

	var matches []model.Match
	for _, material := range materials {
		for _, record := range records {
			if !belongsTo(record, material) {
				continue
			}
			title := strings.ToLower(record.Title)
			body := strings.ToLower(record.Body)
			for _, keyword := range keywords {
				lower := strings.ToLower(keyword)
				if !strings.Contains(title, lower) && !strings.Contains(body, lower) {
					continue
				}
				matches = append(matches, model.Match{
					ProjectID:         project.ID,
					ProjectName:       project.ProjectName,
					ProjectKeyword:    project.ProjectKeyword,
					ProjectMaterialID: material.ID,
					MaterialType:      material.MaterialType,
					MaterialLink:      material.MaterialLink,
					ExternalData:      record,
					MatchedKeyword:    keyword,
				})
				break
			}
		}
	}
	klog.V(6).Infof("keyword match finished: projectID=%d, keywords=%d, matches=%d", project.ID, len(keywords), len(matches))
	return matches
}

// MatchByCode 标题或正文包含项目代码（忽略大小写）即匹配，标题优先
func (m *Matcher) MatchByCode(ctx context.Context, project *model.Project, materials []model.ProjectMaterial) []model.Match {
	code := strings.ToLower(project.ProjectCode)
	// 空代码是任意字符串的子串，直接视为不匹配
	if code == "" || len(materials) == 0 {
		return nil
	}
	records := m.loadRecords(ctx)

	var matches []model.Match
	for _, material := range materials {
		for _, record := range records {
			if !belongsTo(record, material) {
				continue
			}
			var matchedIn string
			switch {
			case strings.Contains(strings.ToLower(record.Title), code):
				matchedIn = model.MatchedInTitle
			case strings.Contains(strings.ToLower(record.Body), code):
				matchedIn = model.MatchedInBody
			default:
				continue
			}
			matches = append(matches, model.Match{
				ProjectID:         project.ID,
				ProjectName:       project.ProjectName,
				ProjectCode:       project.ProjectCode,
				ProjectMaterialID: material.ID,
				MaterialType:      material.MaterialType,
				MaterialLink:      material.MaterialLink,
				ExternalData:      record,
				MatchedIn:         matchedIn,
			})
		}
	}
	klog.V(6).Infof("code match finished: projectID=%d, code=%s, matches=%d", project.ID, project.ProjectCode, len(matches))
	return matches
}

// loadRecords 读取失败时返回空集合
func (m *Matcher) loadRecords(ctx context.Context) []model.ExternalRecord {
	if m.source == nil {
		return nil
	}
	records, err := m.source.List(ctx)
	if err != nil {
		klog.Warningf("load external data failed, treating as empty: %v", err)
		return nil
	}
	return records
}

func belongsTo(record model.ExternalRecord, material model.ProjectMaterial) bool {
	return record.MaterialType == string(material.MaterialType) && record.MaterialLink == material.MaterialLink
}
