package post

import (
	"time"
	"unicode/utf8"

	"github.com/ArthurDelaporte/Yatube-Back/internal/group"
	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

type Post struct {
	ID        uint         `gorm:"primaryKey"`
	Text      string       `gorm:"type:text;not null"`
	CreatedAt time.Time    `gorm:"index"`
	AuthorID  uint         `gorm:"not null;index"`
	Author    user.User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *uint        `gorm:"index"`
	Group     *group.Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string       `gorm:"size:255"`
}

// String returns the first 15 characters of the text.
func (p Post) String() string {
	if utf8.RuneCountInString(p.Text) <= 15 {
		return p.Text
	}
	return string([]rune(p.Text)[:15])
}
