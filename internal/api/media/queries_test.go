package media

import (
	"testing"

	"media-access/internal/domain/access"
	"media-access/internal/domain/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=media dbname=media sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestListingScope_Restricted(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posts []content.Post
		return attachmentsQuery(tx).
			Scopes(listingScope(access.ListingFilter{AuthorIDs: []uint{7}})).
			Find(&posts)
	})

	assert.Contains(t, sql, "type = 'attachment'")
	assert.Contains(t, sql, "author_id IN (7)")
}

func TestListingScope_Unrestricted(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posts []content.Post
		return attachmentsQuery(tx).Scopes(listingScope(access.ListingFilter{})).Find(&posts)
	})

	assert.Contains(t, sql, "type = 'attachment'")
	assert.NotContains(t, sql, "author_id")
}

func TestQueryArgsScope(t *testing.T) {
	db := dryRunDB(t)

	args := access.QueryArgs{
		access.QueryKeyAuthorIn: []any{float64(3), float64(4)},
		"post_mime_type":        "image",
		"s":                     " sunset ",
		"posts_per_page":        float64(10),
		"paged":                 float64(3),
		"orderby":               "title",
		"order":                 "asc",
		"ignored":               true,
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posts []content.Post
		return attachmentsQuery(tx).Scopes(queryArgsScope(args)).Find(&posts)
	})

	assert.Contains(t, sql, "author_id IN (3,4)")
	assert.Contains(t, sql, "mime_type LIKE 'image/%'")
	assert.Contains(t, sql, "title ILIKE '%sunset%'")
	assert.Contains(t, sql, "ORDER BY title ASC")
	assert.Contains(t, sql, "LIMIT 10")
	assert.Contains(t, sql, "OFFSET 20")
	assert.NotContains(t, sql, "ignored")
}

func TestQueryArgsScope_Defaults(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posts []content.Post
		return attachmentsQuery(tx).Scopes(queryArgsScope(access.QueryArgs{"post_mime_type": "image/png"})).Find(&posts)
	})

	assert.Contains(t, sql, "mime_type = 'image/png'")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 40")
	assert.NotContains(t, sql, "author_id")
}

func TestQueryArgsScope_HugePagedStaysPositive(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posts []content.Post
		return attachmentsQuery(tx).Scopes(queryArgsScope(access.QueryArgs{"paged": float64(1e17)})).Find(&posts)
	})

	assert.Contains(t, sql, "OFFSET 399960")
}

func TestUintList(t *testing.T) {
	assert.Equal(t, []uint{7}, uintList([]uint{7}))
	assert.Equal(t, []uint{1, 2}, uintList([]any{float64(1), "2", "x", float64(-1)}))
	assert.Equal(t, []uint{5}, uintList(float64(5)))
	assert.Nil(t, uintList(nil))
	assert.Nil(t, uintList(true))
}

func TestPage_Normalized(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: defaultPerPage}, Page{}.normalized())
	assert.Equal(t, Page{Number: 2, Size: maxPerPage}, Page{Number: 2, Size: 5000}.normalized())
	assert.Equal(t, Page{Number: maxPageNumber, Size: defaultPerPage}, Page{Number: 1e17}.normalized())
}
