package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
)

// ErrNotFound is returned by lookups when no user matches.
var ErrNotFound = errors.New("user not found")

func ExistsByEmail(email string) (bool, error) {
	var count int64
	err := database.DB.Model(&User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func ExistsByUsername(username string) (bool, error) {
	var count int64
	err := database.DB.Model(&User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func GetByUsername(username string) (*User, error) {
	var u User
	if err := database.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func GetByID(id uint) (*User, error) {
	var u User
	if err := database.DB.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func Create(u *User) error {
	return database.DB.Create(u).Error
}
