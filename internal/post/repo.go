package post

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
	"github.com/ArthurDelaporte/Yatube-Back/internal/pagination"
)

var ErrNotFound = errors.New("post not found")

// newestFirst is the listing order of every feed.
const newestFirst = "created_at DESC, id DESC"

// PostPage is one page of a feed, ready for the templates.
type PostPage struct {
	pagination.Page
	Posts []Post
}

// LoadPage paginates query, which must select from posts with filters only,
// and loads the page newest first with authors and groups.
func LoadPage(query *gorm.DB, number, perPage int) (PostPage, error) {
	page, narrowed, err := pagination.Paginate(query, number, perPage)
	if err != nil {
		return PostPage{}, err
	}

	var posts []Post
	if err := narrowed.Order(newestFirst).Preload("Author").Preload("Group").Find(&posts).Error; err != nil {
		return PostPage{}, err
	}
	return PostPage{Page: page, Posts: posts}, nil
}

func GetByID(id uint) (*Post, error) {
	var p Post
	if err := database.DB.Preload("Author").Preload("Group").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func CountByAuthor(authorID uint) (int64, error) {
	var count int64
	err := database.DB.Model(&Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func Create(p *Post) error {
	return database.DB.Create(p).Error
}

// UpdateContent writes text and group only. A nil group clears it. Preloaded
// associations on p are ignored.
func UpdateContent(p *Post) error {
	return database.DB.Model(&Post{ID: p.ID}).Omit(clause.Associations).Updates(map[string]interface{}{
		"text":     p.Text,
		"group_id": p.GroupID,
	}).Error
}

// Comments returns the comments of a post, oldest first.
func Comments(postID uint) ([]Comment, error) {
	var comments []Comment
	err := database.DB.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at, id").
		Find(&comments).Error
	return comments, err
}

func CreateComment(comment *Comment) error {
	return database.DB.Create(comment).Error
}
