package model

// UserAction 后台操作日志表（由 Kafka 消费端落库）

type UserAction struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	ActionName string `gorm:"column:action_name;size:50" json:"action_name"`
	UID        int64  `gorm:"column:uid;index" json:"uid"`
	Nickname   string `gorm:"column:nickname;size:50" json:"nickname"`
	AddTime    int64  `gorm:"column:add_time" json:"add_time"`
	Data       string `gorm:"column:data" json:"data"`
	URL        string `gorm:"column:url;size:200" json:"url"`
	Method     string `gorm:"column:method;size:10" json:"method"`
	Status     int    `gorm:"column:status" json:"status"`
	LatencyMs  int64  `gorm:"column:latency_ms" json:"latency_ms"`
	IP         string `gorm:"column:ip;size:64" json:"ip"`
}

func (UserAction) TableName() string { return "user_action" }
