package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/banshee-data/formcheck/internal/pose"
)

// ErrEmptyFrame is returned for a line that carries no landmark list.
var ErrEmptyFrame = errors.New("line has no landmarks")

const maxLineBytes = 1 << 20

// Reader decodes frames from JSON lines. Blank lines are skipped.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Reader{sc: sc}
}

// Line returns the 1-based number of the line last read.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next frame, or io.EOF once the input is exhausted.
func (r *Reader) Next() (pose.Frame, error) {
	for r.sc.Scan() {
		r.line++
		b := bytes.TrimSpace(r.sc.Bytes())
		if len(b) == 0 {
			continue
		}
		f, err := decodeLine(b)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return f, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

func decodeLine(b []byte) (pose.Frame, error) {
	if b[0] == '[' {
		var f pose.Frame
		if err := json.Unmarshal(b, &f); err != nil {
			return nil, err
		}
		return f, nil
	}

	var obj struct {
		Landmarks *pose.Frame `json:"landmarks"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, err
	}
	if obj.Landmarks == nil {
		return nil, ErrEmptyFrame
	}
	if *obj.Landmarks == nil {
		return pose.Frame{}, nil
	}
	return *obj.Landmarks, nil
}
