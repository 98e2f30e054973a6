package group

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
)

var ErrNotFound = errors.New("group not found")

func GetBySlug(slug string) (*Group, error) {
	var g Group
	if err := database.DB.Where("slug = ?", slug).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func GetByID(id uint) (*Group, error) {
	var g Group
	if err := database.DB.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// All returns every group ordered by title, for form choices.
func All() ([]Group, error) {
	var groups []Group
	if err := database.DB.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func Create(g *Group) error {
	return database.DB.Create(g).Error
}

// Delete removes the group. Its posts keep existing with no group.
func Delete(id uint) error {
	return database.DB.Delete(&Group{}, id).Error
}
