package repository

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// sortByName orders records the way an Indonesian-locale UI would list them.
// A collator is not safe for concurrent use, so one is built per call.
func sortByName[T any](items []T, name func(*T) string) {
	c := collate.New(language.Indonesian, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(&items[i]), name(&items[j])) < 0
	})
}

// NormalizeCode is how every business code is stored: trimmed, upper-case.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// codeTaken reports whether another row of the same table already uses code.
// excludeID lets an update keep its own code.
func codeTaken(db *gorm.DB, model interface{}, code, excludeID string) (bool, error) {
	var count int64
	query := db.Model(model).Where("UPPER(code) = ?", NormalizeCode(code))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
