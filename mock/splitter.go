package mock

import "github.com/docsem/docsem"

var _ docsem.Splitter = (*Splitter)(nil)

// Splitter is a mock implementation of docsem.Splitter.
type Splitter struct {
	SplitFn func(html string) (string, []docsem.Section, error)
}

func (s *Splitter) Split(html string) (string, []docsem.Section, error) {
	return s.SplitFn(html)
}
