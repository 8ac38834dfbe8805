package linecount

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"totallines/internal/domain"
)

// CountLines returns the number of lines in r.
//
// "\n", "\r\n" and a lone "\r" each end a line, and a final record without a
// terminator still counts, so "a\nb\nc" is 3 lines and "" is 0. The content
// must be valid UTF-8; the first invalid byte fails the count with
// domain.ErrInvalidEncoding.
func CountLines(r io.Reader) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	var (
		lines  int
		offset int64
		open   bool // a record has started but not been terminated
		prevCR bool
	)
	for {
		c, size, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if c == utf8.RuneError && size == 1 {
			return 0, fmt.Errorf("%w at byte %d", domain.ErrInvalidEncoding, offset)
		}
		offset += int64(size)

		switch c {
		case '\n':
			if prevCR {
				// second half of "\r\n", already counted
				prevCR = false
				continue
			}
			lines++
			open = false
		case '\r':
			lines++
			open = false
			prevCR = true
			continue
		default:
			open = true
		}
		prevCR = false
	}
	if open {
		lines++
	}
	return lines, nil
}
