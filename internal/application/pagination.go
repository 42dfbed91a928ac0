package application

import "github.com/shareloop/service-sharing/internal/domain"

// pageWindow turns a (from, size) pair into an offset/limit window.
// from is a zero-based item offset; the window is the page from/size of
// size rows, so the offset snaps to a page boundary.
func pageWindow(from, size int) (offset, limit int, err error) {
	if from < 0 || size <= 0 {
		return 0, 0, domain.NewPaginationError(from, size)
	}
	return (from / size) * size, size, nil
}
