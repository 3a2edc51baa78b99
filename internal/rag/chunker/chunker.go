package chunker

import (
	"errors"
	"strings"
)

var ErrBadChunkSize = errors.New("chunk size must be a positive word count")

// Split partitions text into contiguous windows of chunkSize words,
// the last window possibly shorter. Words are whitespace-separated and
// rejoined with single spaces, so joining the chunks back with spaces
// reproduces the original word sequence exactly. Empty text yields an
// empty slice. Pure, no state between calls.
func Split(text string, chunkSize int) ([]string, error) {
	if chunkSize < 1 {
		return nil, ErrBadChunkSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}, nil
	}

	chunks := make([]string, 0, (len(words)+chunkSize-1)/chunkSize)
	for i := 0; i < len(words); i += chunkSize {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks, nil
}
