package pagination

// Slice returns the 1-based page of ids holding at most pageSize entries.
// A page below 1 is treated as the first page; a non-positive pageSize or a
// page past the end yields an empty slice.
func Slice(ids []int, page, pageSize int) []int {
	if pageSize <= 0 || len(ids) == 0 {
		return []int{}
	}
	if page < 1 {
		page = 1
	}

	pages := len(ids) / pageSize
	if len(ids)%pageSize != 0 {
		pages++
	}
	if page-1 >= pages {
		return []int{}
	}

	skip := (page - 1) * pageSize
	end := skip + min(pageSize, len(ids)-skip)
	return ids[skip:end:end]
}
