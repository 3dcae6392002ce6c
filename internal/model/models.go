package model

import (
	"strings"
	"time"
)

// Project 项目，materials/items/summaries/recommendations 的所有者
type Project struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	AuthorEmail     string            `json:"author_email" gorm:"size:254;not null"`
	ProjectName     string            `json:"project_name" gorm:"size:255;not null"`
	ProjectCode     string            `json:"project_code" gorm:"size:255;not null"`
	ProjectKeyword  string            `json:"project_keyword" gorm:"type:text"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Materials       []ProjectMaterial `json:"-" gorm:"foreignKey:ProjectID"`
	Items           []Item            `json:"-" gorm:"foreignKey:ProjectID"`
	Summaries       []Summary         `json:"-" gorm:"foreignKey:ProjectID"`
	Recommendations []Recommendation  `json:"-" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// Keywords 按逗号拆分关键字，去除空白并丢弃空串
func (p *Project) Keywords() []string {
	var keywords []string
	for _, kw := range strings.Split(p.ProjectKeyword, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// ProjectMaterial 项目关联的外部资料来源
type ProjectMaterial struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	ProjectID    uint         `json:"project" gorm:"index;not null"`
	MaterialType MaterialType `json:"material_type" gorm:"size:20;not null"`
	MaterialLink string       `json:"material_link" gorm:"size:500;not null"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Project      *Project     `json:"-" gorm:"foreignKey:ProjectID"`
}

func (ProjectMaterial) TableName() string {
	return "project_materials"
}

// AIRequest 一次文本生成调用的输入输出记录
type AIRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Input       string    `json:"input" gorm:"type:text"`
	Output      string    `json:"output" gorm:"type:text"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (AIRequest) TableName() string {
	return "ai_requests"
}

// Summary 项目摘要，AIRequest 被删除时 AIRequestID 置空
type Summary struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ProjectID   uint       `json:"project" gorm:"index;not null"`
	AIRequestID *uint      `json:"ai_request" gorm:"index"`
	Content     string     `json:"content" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Project     *Project   `json:"-" gorm:"foreignKey:ProjectID"`
	AIRequest   *AIRequest `json:"-" gorm:"foreignKey:AIRequestID"`
}

func (Summary) TableName() string {
	return "summaries"
}

// Item 由外部记录派生或手工创建的内容条目
type Item struct {
	ID                  uint             `json:"id" gorm:"primaryKey"`
	ProjectID           uint             `json:"project" gorm:"index:idx_items_natural_key,priority:1;not null"`
	ProjectMaterialID   uint             `json:"project_material" gorm:"index:idx_items_natural_key,priority:2;not null"`
	ChannelName         string           `json:"channel_name" gorm:"size:255"`
	Title               string           `json:"title" gorm:"size:255"`
	Body                string           `json:"body" gorm:"type:text"`
	Link                string           `json:"link" gorm:"size:500;index:idx_items_natural_key,priority:3"`
	IsFixed             bool             `json:"is_fixed" gorm:"not null"`
	IsActive            bool             `json:"is_active" gorm:"not null"`
	OriginDataCreatedAt *time.Time       `json:"origin_data_created_at"`
	OriginDataUpdatedAt *time.Time       `json:"origin_data_updated_at"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Project             *Project         `json:"-" gorm:"foreignKey:ProjectID"`
	ProjectMaterial     *ProjectMaterial `json:"-" gorm:"foreignKey:ProjectMaterialID"`
}

func (Item) TableName() string {
	return "items"
}

// Recommendation 指向 Item 的推荐标记
// 停用时关联的 Item 会被删除，ItemID 随之置空
type Recommendation struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ProjectID         uint      `json:"project" gorm:"index;not null"`
	ItemID            *uint     `json:"item" gorm:"index"`
	ProjectMaterialID *uint     `json:"project_material" gorm:"index"`
	IsActive          bool      `json:"is_active" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Project           *Project  `json:"-" gorm:"foreignKey:ProjectID"`
	Item              *Item     `json:"-" gorm:"foreignKey:ItemID"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// AllModels AutoMigrate 使用的模型列表
func AllModels() []any {
	return []any{
		&Project{},
		&ProjectMaterial{},
		&AIRequest{},
		&Summary{},
		&Item{},
		&Recommendation{},
	}
}
