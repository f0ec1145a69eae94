package model

// Task represents a single to-do item. Category refers to Category.Name.
type Task struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Content   string `json:"content"`
	Category  string `gorm:"index" json:"category"`
	Deadline  Date   `gorm:"type:date;index" json:"deadline"`
	Completed bool   `gorm:"default:false" json:"completed"`
}
