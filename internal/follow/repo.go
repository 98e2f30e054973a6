package follow

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
)

func IsFollowing(userID, authorID uint) (bool, error) {
	var f Follow
	err := database.DB.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		First(&f).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Subscribe makes userID follow authorID. Following yourself is a no-op and
// an existing subscription is left untouched.
func Subscribe(userID, authorID uint) error {
	if userID == authorID {
		return nil
	}

	f := Follow{UserID: userID, AuthorID: authorID}
	return database.DB.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&f).Error
}

// Unsubscribe removes the subscription if there is one.
func Unsubscribe(userID, authorID uint) error {
	return database.DB.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&Follow{}).Error
}

// AuthorIDsQuery selects the authors userID follows, for use as a subquery.
func AuthorIDsQuery(userID uint) *gorm.DB {
	return database.DB.Model(&Follow{}).Select("author_id").Where("user_id = ?", userID)
}

// CountFollowers counts the users subscribed to authorID.
func CountFollowers(authorID uint) (int64, error) {
	var count int64
	err := database.DB.Model(&Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
