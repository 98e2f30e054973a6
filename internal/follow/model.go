package follow

import (
	"time"

	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

// Follow records that UserID subscribed to AuthorID's posts. The pair is
// unique.
type Follow struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UserID    uint      `gorm:"not null;uniqueIndex:idx_follow_user_author"`
	User      user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;uniqueIndex:idx_follow_user_author;index"`
	Author    user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
