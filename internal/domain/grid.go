package domain

// GridCell is an axis-aligned cell at the configured degree step.
type GridCell struct {
	X, Y int
}

// DownloadHistory is a session token plus an ordered, append-only list of
// cell-set batches.
type DownloadHistory struct {
	Session string
	Batches [][]GridCell
}
