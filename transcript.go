package txtshot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/k1LoW/errors"
)

// ReadTranscript reads the transcript at path as lines.
func ReadTranscript(path string) (_ []string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTranscriptNotFound, path)
		}
		return nil, fmt.Errorf("failed to open transcript %s: %w", path, err)
	}
	defer f.Close()
	return ReadLines(f)
}

// ReadLines splits r into lines on "\n", "\r\n" and "\r".
// A final line terminator does not start another line.
func ReadLines(r io.Reader) (_ []string, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	s.Split(scanLines)
	lines := []string{}
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return lines, nil
}

// scanLines is bufio.ScanLines that also accepts a lone "\r" as a terminator.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need more data to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
