package model

// MaterialType 资料来源类型（封闭枚举）
type MaterialType string

const (
	MaterialTypeIssueTracker MaterialType = "jira"
	MaterialTypeChat         MaterialType = "slack"
	MaterialTypeCodeHost     MaterialType = "github"
	MaterialTypeMail         MaterialType = "gmail"
)

// MaterialTypes 所有合法的资料类型，顺序即展示顺序
var MaterialTypes = []struct {
	Type  MaterialType
	Label string
}{
	{MaterialTypeIssueTracker, "Jira"},
	{MaterialTypeChat, "Slack"},
	{MaterialTypeCodeHost, "Github"},
	{MaterialTypeMail, "Gmail"},
}

func (t MaterialType) Valid() bool {
	for _, mt := range MaterialTypes {
		if mt.Type == t {
			return true
		}
	}
	return false
}

func (t MaterialType) Label() string {
	for _, mt := range MaterialTypes {
		if mt.Type == t {
			return mt.Label
		}
	}
	return string(t)
}
