package eventbus

type ProjectEventType string

const (
	ProjectEventItemsIngested             ProjectEventType = "ItemsIngested"
	ProjectEventSummaryCreated            ProjectEventType = "SummaryCreated"
	ProjectEventRecommendationDeactivated ProjectEventType = "RecommendationDeactivated"
)

type ProjectEvent struct {
	Type      ProjectEventType
	ProjectID uint
	// ItemIDs 本次入库新建的条目
	ItemIDs          []uint
	SummaryID        uint
	RecommendationID uint
	// ItemID 停用推荐时被删除的条目
	ItemID uint
}

type ProjectEventHandler = Handler[ProjectEvent]
type ProjectEventBus = Bus[ProjectEventType, ProjectEvent]

func NewProjectEventBus() *ProjectEventBus {
	return NewBus(func(e ProjectEvent) ProjectEventType { return e.Type })
}
