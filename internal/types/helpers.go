package types

import (
	"strings"

	"github.com/samber/lo"
)

// NormalizeIDs trims blanks and collapses duplicates, keeping first-seen order
func NormalizeIDs(ids []string) []string {
	trimmed := lo.FilterMap(ids, func(id string, _ int) (string, bool) {
		id = strings.TrimSpace(id)
		return id, id != ""
	})
	return lo.Uniq(trimmed)
}
