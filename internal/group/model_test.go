package group

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ArthurDelaporte/Yatube-Back/internal/database"
)

func TestGroupString(t *testing.T) {
	g := Group{Title: "Тестовая группа", Slug: "test-slug", Description: "Тестовое описание"}
	assert.Equal(t, "Тестовая группа", g.String())
}

func TestValidSlug(t *testing.T) {
	tests := map[string]bool{
		"test-slug":  true,
		"cats_2024":  true,
		"":           false,
		"with space": false,
		"слаг":       false,
		"a/b":        false,
	}
	for slug, want := range tests {
		t.Run(slug, func(t *testing.T) {
			assert.Equal(t, want, ValidSlug(slug))
		})
	}
}

func TestGetBySlug(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer mockDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	defer func() { database.DB = originalDB }()

	columns := []string{"id", "title", "slug", "description"}

	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "Cats", "cats", "All about cats"))
	g, err := GetBySlug("cats")
	assert.NoError(t, err)
	assert.Equal(t, "Cats", g.Title)

	mock.ExpectQuery(`SELECT`).WillReturnRows(sqlmock.NewRows(columns))
	g, err = GetBySlug("dogs")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, g)
}
