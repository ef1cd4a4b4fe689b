package storage

// WriteResult describes one written report.
type WriteResult struct {
	seedHash string // identity (filename without prefix and extension)
	path     string
	format   string
	size     int
}

func NewWriteResult(
	seedHash string,
	path string,
	format string,
	size int,
) WriteResult {
	return WriteResult{
		seedHash: seedHash,
		path:     path,
		format:   format,
		size:     size,
	}
}

func (w *WriteResult) SeedHash() string {
	return w.seedHash
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) Format() string {
	return w.format
}

func (w *WriteResult) Size() int {
	return w.size
}

// linkRow is one CSV line: a refined link, or a page without links.
type linkRow struct {
	Source string `csv:"source"`
	Title  string `csv:"title"`
	Depth  int    `csv:"depth"`
	Target string `csv:"target"`
}
