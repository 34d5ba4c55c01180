package api

import (
	"errors"
	"strconv"
	"strings"
)

var errBadRange = errors.New("range not satisfiable")

// byteRange is an inclusive span of a file.
type byteRange struct {
	start, end int64
}

func (br byteRange) length() int64 {
	return br.end - br.start + 1
}

// parseRange reads a single "bytes=<start>-<end>" range against size.
// A missing start means 0 and a missing end means the last byte; end is
// clamped to the file. Multiple ranges, other units, non-numeric bounds,
// start > end and start beyond the file are all unsatisfiable.
func parseRange(header string, size int64) (byteRange, error) {
	spec, ok := strings.CutPrefix(strings.TrimSpace(header), "bytes=")
	if !ok || strings.Contains(spec, ",") {
		return byteRange{}, errBadRange
	}
	rawStart, rawEnd, ok := strings.Cut(spec, "-")
	if !ok {
		return byteRange{}, errBadRange
	}

	br := byteRange{start: 0, end: size - 1}
	if s := strings.TrimSpace(rawStart); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return byteRange{}, errBadRange
		}
		br.start = v
	}
	if s := strings.TrimSpace(rawEnd); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return byteRange{}, errBadRange
		}
		if v < br.start {
			return byteRange{}, errBadRange
		}
		br.end = min(v, size-1)
	}

	if br.start >= size {
		return byteRange{}, errBadRange
	}
	return br, nil
}
