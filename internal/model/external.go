package model

// ExternalRecord 外部数据源中的一条记录
type ExternalRecord struct {
	MaterialType string `json:"material_type"`
	MaterialLink string `json:"material_link"`
	Title        string `json:"title"`
	Body         string `json:"body"`
	Link         string `json:"link"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type MatchMode string

const (
	MatchByKeyword MatchMode = "keyword"
	MatchByCode    MatchMode = "code"
)

const (
	MatchedInTitle = "title"
	MatchedInBody  = "body"
)

// Match 一条外部记录与项目资料的匹配结果
// 关键字模式填充 ProjectKeyword/MatchedKeyword，代码模式填充 ProjectCode/MatchedIn
type Match struct {
	ProjectID         uint           `json:"project_id"`
	ProjectName       string         `json:"project_name"`
	ProjectKeyword    string         `json:"project_keyword,omitempty"`
	ProjectCode       string         `json:"project_code,omitempty"`
	ProjectMaterialID uint           `json:"project_material_id"`
	MaterialType      MaterialType   `json:"material_type"`
	MaterialLink      string         `json:"material_link"`
	ExternalData      ExternalRecord `json:"external_data"`
	MatchedKeyword    string         `json:"matched_keyword,omitempty"`
	MatchedIn         string         `json:"matched_in,omitempty"`
}
