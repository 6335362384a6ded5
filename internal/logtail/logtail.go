package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the path that selects standard input in ReadSource.
const Stdin = "-"

// Read returns at most maxLines from the end of the file at path. A non-positive
// maxLines returns every line. A missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	return ReadFrom(file, maxLines)
}

// ReadSource reads a file, or stdin when path is "-", and joins the kept lines
// into buffer text. Unlike Read, a missing file is an error: the caller named it.
func ReadSource(path string, stdin io.Reader, maxLines int) (string, error) {
	if path == Stdin {
		lines, err := ReadFrom(stdin, maxLines)
		if err != nil {
			return "", err
		}
		return strings.Join(lines, "\n"), nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("open log: %w", err)
	}
	lines, err := Read(path, maxLines)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// ReadFrom returns at most maxLines from the end of r.
func ReadFrom(r io.Reader, maxLines int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}
