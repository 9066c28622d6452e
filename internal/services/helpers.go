package services

// pageWindow normalises pagination inputs: page is 1-based and the page size
// is clamped to a sane range.
func pageWindow(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}
	return page, perPage
}
