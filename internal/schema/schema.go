// Package schema lists the persisted models and migrates them.
package schema

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Yatube-Back/internal/follow"
	"github.com/ArthurDelaporte/Yatube-Back/internal/group"
	"github.com/ArthurDelaporte/Yatube-Back/internal/post"
	"github.com/ArthurDelaporte/Yatube-Back/internal/user"
)

// Models is in dependency order: referenced tables come first.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&group.Group{},
		&post.Post{},
		&post.Comment{},
		&follow.Follow{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
