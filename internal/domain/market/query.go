package market

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortLikesDesc SortKey = "likes_desc"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortNone, SortPriceAsc, SortPriceDesc, SortLikesDesc:
		return SortKey(s), true
	default:
		return SortNone, false
	}
}

// Query describes a read-only projection over the registry. Zero values mean
// "no constraint".
type Query struct {
	Owner       string
	Rarity      Rarity
	ForSaleOnly bool
	Text        string
	Sort        SortKey
}

// FilterAndSort applies a query to a snapshot of items. The input slice is
// never mutated; ties keep registry order (stable sort).
func FilterAndSort(items []*Item, q Query) []*Item {
	matched := make([]*Item, 0, len(items))
	text := strings.ToLower(q.Text)

	for _, item := range items {
		if q.Owner != "" && item.Owner != q.Owner {
			continue
		}
		if q.Rarity != "" && item.Rarity != q.Rarity {
			continue
		}
		if q.ForSaleOnly && !item.ForSale {
			continue
		}
		if text != "" && !matchesText(item, text) {
			continue
		}
		matched = append(matched, item)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(matched, func(a, b int) bool { return matched[a].Price < matched[b].Price })
	case SortPriceDesc:
		sort.SliceStable(matched, func(a, b int) bool { return matched[a].Price > matched[b].Price })
	case SortLikesDesc:
		sort.SliceStable(matched, func(a, b int) bool { return matched[a].Likes > matched[b].Likes })
	}

	return matched
}

func matchesText(item *Item, loweredText string) bool {
	return strings.Contains(strings.ToLower(item.Name), loweredText) ||
		strings.Contains(strings.ToLower(item.Description), loweredText)
}
