package routing

import "errors"

var (
	ErrPathNotFound    = errors.New("no path between origin and destination")
	ErrSearchCancelled = errors.New("search cancelled")
	ErrInvalidVertex   = errors.New("vertex is not part of the graph")
)
