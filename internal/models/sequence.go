package models

// Sequence 序号分配表（行内计数，保证连续无空洞）
type Sequence struct {
	Name  string `gorm:"primaryKey;size:64" json:"name"` // 序号名称
	Value uint64 `gorm:"not null;default:0" json:"value"` // 当前已分配值
}

// TableName 指定表名
func (Sequence) TableName() string {
	return "sequences"
}
