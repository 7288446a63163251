package media

import (
	"strconv"
	"strings"

	"media-access/internal/domain/access"
	"media-access/internal/domain/content"

	"gorm.io/gorm"
)

func attachmentsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&content.Post{}).
		Where("type = ?", content.TypeAttachment)
}

func listingScope(filter access.ListingFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !filter.Restricted() {
			return db
		}
		return db.Where("author_id IN ?", filter.AuthorIDs)
	}
}

// queryArgsScope translates upload-modal query args into conditions.
// Unknown keys are ignored.
func queryArgsScope(args access.QueryArgs) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ids := uintList(args[access.QueryKeyAuthorIn]); len(ids) > 0 {
			db = db.Where("author_id IN ?", ids)
		}

		if mime, ok := args["post_mime_type"].(string); ok && mime != "" {
			if strings.Contains(mime, "/") {
				db = db.Where("mime_type = ?", mime)
			} else {
				db = db.Where("mime_type LIKE ?", mime+"/%")
			}
		}

		if search, ok := args["s"].(string); ok && strings.TrimSpace(search) != "" {
			db = db.Where("title ILIKE ?", "%"+strings.TrimSpace(search)+"%")
		}

		if parent, ok := toUint(args["post_parent"]); ok {
			db = db.Where("parent_id = ?", parent)
		}

		order := "DESC"
		if o, ok := args["order"].(string); ok && strings.EqualFold(o, "asc") {
			order = "ASC"
		}
		switch args["orderby"] {
		case "title":
			db = db.Order("title " + order)
		default:
			db = db.Order("created_at " + order)
		}

		page := Page{}
		if n, ok := toInt(args["posts_per_page"]); ok {
			page.Size = n
		}
		if n, ok := toInt(args["paged"]); ok {
			page.Number = n
		}
		page = page.normalized()

		return db.Offset((page.Number - 1) * page.Size).Limit(page.Size)
	}
}

// uintList accepts the shapes author__in arrives in: []uint from the
// policy, []any from decoded JSON, or a single id.
func uintList(v any) []uint {
	switch vv := v.(type) {
	case nil:
		return nil
	case []uint:
		return vv
	case []any:
		out := make([]uint, 0, len(vv))
		for _, item := range vv {
			if id, ok := toUint(item); ok {
				out = append(out, id)
			}
		}
		return out
	default:
		if id, ok := toUint(v); ok {
			return []uint{id}
		}
		return nil
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

func toUint(v any) (uint, bool) {
	n, ok := toInt(v)
	if !ok || n <= 0 {
		return 0, false
	}
	return uint(n), true
}
