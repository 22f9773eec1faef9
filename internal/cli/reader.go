package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// InputReader reads trimmed lines from the user and gives up as soon as the
// context is done, even while a read is still blocked.
type InputReader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewInputReader wraps reader. A nil reader panics.
func NewInputReader(reader io.Reader) *InputReader {
	if reader == nil {
		panic("reader cannot be nil")
	}

	return &InputReader{
		reader: bufio.NewReader(reader),
	}
}

// ReadLine returns the next line with surrounding whitespace removed.
// A final line without a newline is returned before io.EOF.
func (r *InputReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}

	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The goroutine finishes its read in the background.
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.value != "" {
				return strings.TrimSpace(res.value), nil
			}
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}
