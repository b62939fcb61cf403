package models

import "time"

// Diary is one analyzed diary entry. Rows are only ever inserted.
type Diary struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Mood        string    `json:"mood"`
	Reason      string    `gorm:"type:text" json:"reason"`
	Advice      string    `gorm:"type:text" json:"advice"`
	ColorHex    string    `gorm:"type:varchar(16)" json:"color_hex"`
	ColorDesc   string    `json:"color_desc"`
	ImagePrompt string    `gorm:"type:text" json:"image_prompt"`
	Gift        string    `gorm:"type:text" json:"gift"`
	Date        time.Time `gorm:"index" json:"date"`
}

func (Diary) TableName() string {
	return "diaries"
}
