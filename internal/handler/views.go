package handler

import (
	"time"

	"github.com/projecthub/backend/internal/model"
)

// 序列化视图，在模型字段之外附带关联对象的展示字段

type MaterialView struct {
	model.ProjectMaterial
	ProjectName string `json:"project_name"`
}

type SummaryView struct {
	model.Summary
	ProjectName string `json:"project_name"`
}

type ItemView struct {
	model.Item
	ProjectName  string `json:"project_name"`
	MaterialType string `json:"material_type"`
}

type RecommendationView struct {
	model.Recommendation
	ProjectName string  `json:"project_name"`
	ItemTitle   *string `json:"item_title"`
}

type ProjectDetailView struct {
	model.Project
	Materials       []MaterialView       `json:"materials"`
	Items           []ItemView           `json:"items"`
	Summaries       []SummaryView        `json:"summaries"`
	Recommendations []RecommendationView `json:"recommendations"`
}

type MaterialDetailView struct {
	ID              uint                 `json:"id"`
	Project         *model.Project       `json:"project"`
	MaterialType    model.MaterialType   `json:"material_type"`
	MaterialLink    string               `json:"material_link"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Items           []ItemView           `json:"items"`
	Recommendations []RecommendationView `json:"recommendations"`
}

func projectName(p *model.Project) string {
	if p == nil {
		return ""
	}
	return p.ProjectName
}

func newMaterialView(m model.ProjectMaterial) MaterialView {
	return MaterialView{ProjectMaterial: m, ProjectName: projectName(m.Project)}
}

func newSummaryView(s model.Summary) SummaryView {
	return SummaryView{Summary: s, ProjectName: projectName(s.Project)}
}

func newItemView(i model.Item) ItemView {
	view := ItemView{Item: i, ProjectName: projectName(i.Project)}
	if i.ProjectMaterial != nil {
		view.MaterialType = string(i.ProjectMaterial.MaterialType)
	}
	return view
}

func newRecommendationView(r model.Recommendation) RecommendationView {
	view := RecommendationView{Recommendation: r, ProjectName: projectName(r.Project)}
	if r.Item != nil {
		title := r.Item.Title
		view.ItemTitle = &title
	}
	return view
}

func materialViews(list []model.ProjectMaterial) []MaterialView {
	views := make([]MaterialView, 0, len(list))
	for _, m := range list {
		views = append(views, newMaterialView(m))
	}
	return views
}

func summaryViews(list []model.Summary) []SummaryView {
	views := make([]SummaryView, 0, len(list))
	for _, s := range list {
		views = append(views, newSummaryView(s))
	}
	return views
}

func itemViews(list []model.Item) []ItemView {
	views := make([]ItemView, 0, len(list))
	for _, i := range list {
		views = append(views, newItemView(i))
	}
	return views
}

func recommendationViews(list []model.Recommendation) []RecommendationView {
	views := make([]RecommendationView, 0, len(list))
	for _, r := range list {
		views = append(views, newRecommendationView(r))
	}
	return views
}

// newProjectDetailView 子集合缺少反向关联时用项目本身补全名称
func newProjectDetailView(p *model.Project) ProjectDetailView {
	view := ProjectDetailView{
		Project:         *p,
		Materials:       make([]MaterialView, 0, len(p.Materials)),
		Items:           make([]ItemView, 0, len(p.Items)),
		Summaries:       make([]SummaryView, 0, len(p.Summaries)),
		Recommendations: make([]RecommendationView, 0, len(p.Recommendations)),
	}
	for _, m := range p.Materials {
		v := newMaterialView(m)
		v.ProjectName = p.ProjectName
		view.Materials = append(view.Materials, v)
	}
	for _, i := range p.Items {
		v := newItemView(i)
		v.ProjectName = p.ProjectName
		view.Items = append(view.Items, v)
	}
	for _, s := range p.Summaries {
		v := newSummaryView(s)
		v.ProjectName = p.ProjectName
		view.Summaries = append(view.Summaries, v)
	}
	for _, r := range p.Recommendations {
		v := newRecommendationView(r)
		v.ProjectName = p.ProjectName
		view.Recommendations = append(view.Recommendations, v)
	}
	return view
}
