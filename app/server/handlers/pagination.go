package handlers

import "strconv"

func (a *App) parsePagination(pageStr string, limitStr string) (bool, int, int) {
	page, errPage := strconv.Atoi(pageStr)
	limit, errLimit := strconv.Atoi(limitStr)

	if errPage == nil && page == 0 && errLimit == nil && limit == 0 {
		// 特殊参数：展示全部
		return true, -1, -1
	}

	// 映射前：第几页，每页限制多少个
	// 映射后：页减一，限制不变
	if errPage != nil || page < 1 {
		page = 1
	}
	if errLimit != nil || limit <= 0 {
		limit = 100
	}

	return false, page - 1, limit
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	} else {
		pageMax := count / int64(limit)
		if (count % int64(limit)) != 0 {
			pageMax++
		}
		return pageMax
	}
}
