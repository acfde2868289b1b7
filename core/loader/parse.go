package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ParseOptions controls how delimited serial lists are read.
type ParseOptions struct {
	Delimiter  rune
	Column     int
	SkipHeader bool
}

// ParseSerials reads one serial per line from r. Each line is split on the
// delimiter and the configured column is trimmed of surrounding whitespace.
// Blank lines and lines too short for the column are kept as empty entries so
// that positions in the input are preserved; empty entries never match.
func ParseSerials(r io.Reader, opts ParseOptions) ([]string, error) {
	if opts.Column < 0 {
		return nil, fmt.Errorf("invalid column %d", opts.Column)
	}
	sep := string(opts.Delimiter)
	if opts.Delimiter == 0 {
		sep = ","
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	serials := make([]string, 0)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			line = strings.TrimPrefix(line, "\ufeff")
			if opts.SkipHeader {
				continue
			}
		}
		serials = append(serials, column(line, sep, opts.Column))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading serials: %w", err)
	}
	return serials, nil
}

func column(line, sep string, idx int) string {
	fields := strings.Split(line, sep)
	if idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}
