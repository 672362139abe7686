package upload

import (
	"io"
	"math"
)

// progressReader reports bytesTransferred/totalBytes as a rounded integer
// percentage. Reports are monotonically non-decreasing; each percentage is
// emitted at most once.
type progressReader struct {
	src    io.Reader
	total  int64
	read   int64
	last   int
	report func(int)
}

func newProgressReader(src io.Reader, total int64, report func(int)) *progressReader {
	return &progressReader{src: src, total: total, report: report}
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	if n > 0 {
		r.read += int64(n)
		r.emit()
	}
	return n, err
}

func (r *progressReader) emit() {
	if r.report == nil || r.total <= 0 {
		return
	}

	pct := int(math.Round(float64(r.read) / float64(r.total) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct > r.last {
		r.last = pct
		r.report(pct)
	}
}

// finish guarantees the caller observes 100 before completion even when the
// transport buffered the tail of the stream.
func (r *progressReader) finish() {
	if r.report != nil && r.last < 100 {
		r.last = 100
		r.report(100)
	}
}
