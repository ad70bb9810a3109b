package db

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const maxDerivedTitleRunes = 40

// Diary 记录用户的一篇日记，可选关联一棵植物
// Date 只保留日期部分，同一天可以有多篇
type Diary struct {
	gorm.Model
	UserID  uint      `gorm:"index:idx_diary_user_date,priority:1;not null"`
	User    User      `gorm:"constraint:OnDelete:CASCADE"`
	PlantID *uint     `gorm:"index"`
	Plant   *Plant    `gorm:"constraint:OnDelete:SET NULL"`
	Date    time.Time `gorm:"index:idx_diary_user_date,priority:2"`
	Emotion string    `gorm:"size:32"`
	Title   string    `gorm:"size:200"`
	Content string    `gorm:"type:text"`
}

// DeriveTitleFromContent 取正文第一行非空文本作为标题，去掉 Markdown 标题符号与强调符号
func DeriveTitleFromContent(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimLeft(trimmed, "#")
		trimmed = strings.TrimSpace(trimmed)
		trimmed = strings.Trim(trimmed, "*_")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed == "" {
			continue
		}

		runes := []rune(trimmed)
		if len(runes) > maxDerivedTitleRunes {
			return string(runes[:maxDerivedTitleRunes])
		}
		return trimmed
	}
	return ""
}
