package dashboard

import "github.com/jerry-enebeli/runboard/model"

// RowsPerPageOptions are the page sizes a table offers.
var RowsPerPageOptions = []int{10, 25, 50, 100}

const DefaultRowsPerPage = 10

// maxPageButtons is the width of the page button window.
const maxPageButtons = 5

// Range is the 1-based, inclusive span of rows shown on a page.
type Range struct {
	Start      int `json:"start"`
	End        int `json:"end"`
	TotalPages int `json:"total_pages"`
}

// Paginate computes the displayed range. An empty table has the zero Range.
func Paginate(total, perPage, page int) Range {
	if total <= 0 || perPage <= 0 {
		return Range{}
	}
	totalPages := (total + perPage - 1) / perPage
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return Range{
		Start:      perPage*(page-1) + 1,
		End:        min(perPage*page, total),
		TotalPages: totalPages,
	}
}

// PageWindow returns the page numbers to show as buttons: at most five, sliding so the
// current page stays centered once it moves past the third page.
func PageWindow(current, totalPages int) []int {
	n := min(maxPageButtons, totalPages)
	if n <= 0 {
		return []int{}
	}

	var first int
	switch {
	case totalPages <= maxPageButtons, current <= 3:
		first = 1
	case current >= totalPages-2:
		first = totalPages - maxPageButtons + 1
	default:
		first = current - 2
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

// ValidRowsPerPage reports whether n is one of the offered page sizes.
func ValidRowsPerPage(n int) bool {
	for _, opt := range RowsPerPageOptions {
		if opt == n {
			return true
		}
	}
	return false
}

// PageOf returns the rows of the given page and the range they cover.
func PageOf(rows []model.TableRow, perPage, page int) ([]model.TableRow, Range) {
	r := Paginate(len(rows), perPage, page)
	if r.TotalPages == 0 {
		return []model.TableRow{}, r
	}
	return rows[r.Start-1 : r.End], r
}
