package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/projecthub/backend/internal/dto"
	"github.com/projecthub/backend/internal/eventbus"
	"github.com/projecthub/backend/internal/model"
	"github.com/projecthub/backend/internal/repository"
	"k8s.io/klog/v2"
)

const errItemAlreadyExists = "Item already exists"

var errMissingLink = errors.New("external record has no link")

// originTimeLayouts 外部记录时间戳支持的格式
var originTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Ingestor 将匹配结果写入条目与推荐，单条失败不影响后续匹配
type Ingestor struct {
	itemRepo repository.ItemRepository
	bus      *eventbus.ProjectEventBus
}

func NewIngestor(itemRepo repository.ItemRepository, bus *eventbus.ProjectEventBus) *Ingestor {
	return &Ingestor{itemRepo: itemRepo, bus: bus}
}

// Ingest 关键字模式创建未固定条目并附带推荐，代码模式创建固定条目
func (in *Ingestor) Ingest(ctx context.Context, project *model.Project, matches []model.Match, mode model.MatchMode) *dto.IngestResult {
	result := &dto.IngestResult{}
	var createdIDs []uint

	for _, match := range matches {
		record := match.ExternalData
		if strings.TrimSpace(record.Link) == "" {
			result.Errors = append(result.Errors, recordError(errMissingLink, record))
			continue
		}

		existing, err := in.itemRepo.FindByNaturalKey(ctx, project.ID, match.ProjectMaterialID, record.Link)
		if err != nil {
			result.Errors = append(result.Errors, recordError(err, record))
			continue
		}
		if existing != nil {
			result.Errors = append(result.Errors, dto.IngestError{
				Error:  errItemAlreadyExists,
				Link:   record.Link,
				ItemID: existing.ID,
			})
			continue
		}

		item, err := newItemFromRecord(project.ID, match.ProjectMaterialID, record, mode == model.MatchByCode)
		if err != nil {
			result.Errors = append(result.Errors, recordError(err, record))
			continue
		}

		var rec *model.Recommendation
		if mode != model.MatchByCode {
			materialID := match.ProjectMaterialID
			rec = &model.Recommendation{
				ProjectID:         project.ID,
				ProjectMaterialID: &materialID,
				IsActive:          true,
			}
		}
		if err := in.itemRepo.CreateWithRecommendation(ctx, item, rec); err != nil {
			klog.Errorf("create item from external record failed: projectID=%d, link=%s, error=%v", project.ID, record.Link, err)
			result.Errors = append(result.Errors, recordError(err, record))
			continue
		}

		createdIDs = append(createdIDs, item.ID)
		result.CreatedItems = append(result.CreatedItems, dto.CreatedItem{
			ItemID:              item.ID,
			Title:               item.Title,
			Link:                item.Link,
			IsFixed:             item.IsFixed,
			OriginDataCreatedAt: item.OriginDataCreatedAt,
			OriginDataUpdatedAt: item.OriginDataUpdatedAt,
		})
		if rec != nil {
			result.CreatedRecommendations = append(result.CreatedRecommendations, dto.CreatedRecommendation{
				RecommendationID: rec.ID,
				ItemID:           item.ID,
				IsActive:         rec.IsActive,
			})
		}
	}

	klog.V(6).Infof("ingest finished: projectID=%d, mode=%s, matches=%d, created=%d, errors=%d",
		project.ID, mode, len(matches), len(result.CreatedItems), len(result.Errors))

	if len(createdIDs) > 0 && in.bus != nil {
		if err := in.bus.Publish(ctx, eventbus.ProjectEvent{
			Type:      eventbus.ProjectEventItemsIngested,
			ProjectID: project.ID,
			ItemIDs:   createdIDs,
		}); err != nil {
			klog.Warningf("publish items ingested event failed: projectID=%d, error=%v", project.ID, err)
		}
	}
	return result
}

func newItemFromRecord(projectID, materialID uint, record model.ExternalRecord, fixed bool) (*model.Item, error) {
	createdAt, err := parseOriginTime(record.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseOriginTime(record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &model.Item{
		ProjectID:           projectID,
		ProjectMaterialID:   materialID,
		Title:               record.Title,
		Body:                record.Body,
		Link:                record.Link,
		IsFixed:             fixed,
		IsActive:            true,
		OriginDataCreatedAt: createdAt,
		OriginDataUpdatedAt: updatedAt,
	}, nil
}

// parseOriginTime 空串返回 nil
func parseOriginTime(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range originTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid timestamp %q", value)
}

func recordError(err error, record model.ExternalRecord) dto.IngestError {
	return dto.IngestError{Error: err.Error(), ExternalData: &record}
}
