package docsem

// Splitter decomposes a documentation page into a title and an ordered list
// of section-level chunks.
type Splitter interface {
	// Split parses html and returns the page title and its sections in
	// document order. Splitting the same document twice yields the same
	// result; there is no hidden state between calls.
	//
	// Returns ENOTFOUND if the main content container cannot be located
	// (page structure mismatch); no partial result is produced.
	Split(html string) (pageTitle string, sections []Section, err error)
}
