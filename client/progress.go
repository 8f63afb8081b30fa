package client

import "io"

// progressReader reports upload progress as a 0-100 percentage while the
// HTTP transport drains the request body. Reports are monotonic; finish
// forces the terminal 100 even when the transport skipped the last read.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report func(percent int)
}

func newProgressReader(r io.Reader, total int64, report func(int)) *progressReader {
	pr := &progressReader{r: r, total: total, last: -1, report: report}
	pr.emit(0)
	return pr
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)
	if pr.total > 0 {
		pr.emit(int(pr.read * 100 / pr.total))
	}
	return n, err
}

func (pr *progressReader) finish() {
	pr.emit(100)
}

func (pr *progressReader) emit(percent int) {
	if pr.report == nil {
		return
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= pr.last {
		return
	}
	pr.last = percent
	pr.report(percent)
}
