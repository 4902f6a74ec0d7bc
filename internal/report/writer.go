package report

import (
	"io"

	"github.com/nao1215/glyphcheck/internal/model"
)

// Writer renders check results in one output format.
//
// Design decision: Every format implements the same two methods so that
// the check and compare commands pick a format from their flags and never
// branch on it again.
type Writer interface {
	// Write renders one check run and returns the number of bytes written.
	Write(report *model.CheckReport) (int, error)

	// WriteComparison renders the difference between two stored runs.
	WriteComparison(comparison *model.Comparison) (int, error)
}

// BatchWriter renders the runs of several sources as one document.
// Formats whose documents cannot be concatenated, like JSON, implement it.
type BatchWriter interface {
	WriteAll(reports []*model.CheckReport) (int, error)
}

// MultiWriter fans a report out to several Writers, for example a text
// report on the terminal and a JSON copy on disk. It stops at the first
// failing Writer.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a MultiWriter over writers, in order.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the report with every Writer.
func (m *MultiWriter) Write(report *model.CheckReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(report) })
}

// WriteComparison renders the comparison with every Writer.
func (m *MultiWriter) WriteComparison(comparison *model.Comparison) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteComparison(comparison) })
}

// WriteAll renders the reports with every Writer, as one document where
// the Writer is a BatchWriter and one report after another otherwise.
func (m *MultiWriter) WriteAll(reports []*model.CheckReport) (int, error) {
	return m.each(func(w Writer) (int, error) {
		if bw, ok := w.(BatchWriter); ok {
			return bw.WriteAll(reports)
		}
		total := 0
		for _, r := range reports {
			n, err := w.Write(r)
			total += n
			if err != nil {
				return total, err
			}
		}
		return total, nil
	})
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	total := 0
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the destination shared by all formats.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
