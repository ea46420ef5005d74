// Package export writes generation results to disk as JSON.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shahil5z/QuizAndLessonPlanner/internal/generator"
)

// ErrNothingToWrite is returned by WriteResult for a Failure.
var ErrNothingToWrite = errors.New("nothing to write")

// WriteJSON writes payload to path, pretty-printed with two-space
// indentation. Non-ASCII text is written as-is rather than escaped. Parent
// directories are created as needed and an existing file is replaced.
func WriteJSON(path string, payload any) error {
	data, err := Encode(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteResult writes the projection of r to path. A Success writes its
// payload and a MalformedFallback writes {"content": raw}. A Failure writes
// nothing and returns an error wrapping ErrNothingToWrite.
func WriteResult(path string, r generator.Result) error {
	if f, ok := r.(generator.Failure); ok {
		return fmt.Errorf("%w: %s", ErrNothingToWrite, f.Message)
	}
	return WriteJSON(path, generator.Project(r))
}

// Encode returns payload in the form WriteJSON writes it, with a trailing
// newline. json.RawMessage and []byte payloads keep their key order and
// number text; \uXXXX escapes in their strings are written as literal text.
func Encode(payload any) ([]byte, error) {
	var raw []byte
	switch p := payload.(type) {
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return nil, err
		}
		raw = buf.Bytes()
	}

	compact, err := unescapeStrings(bytes.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// unescapeStrings re-emits a JSON document token by token in compact form.
// Strings are re-encoded without HTML escaping, so only quotes, backslashes
// and control characters stay escaped.
func unescapeStrings(raw []byte) ([]byte, error) {
	if !json.Valid(raw) {
		return nil, errors.New("payload is not valid JSON")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)

	// One frame per open object or array; n counts the tokens seen in it.
	type frame struct {
		object bool
		n      int
	}
	var stack []frame

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			stack = stack[:len(stack)-1]
			out.WriteByte(byte(d))
			continue
		}

		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			switch {
			case top.object && top.n%2 == 1:
				out.WriteByte(':')
			case top.n > 0:
				out.WriteByte(',')
			}
			top.n++
		}

		switch v := tok.(type) {
		case json.Delim:
			out.WriteByte(byte(v))
			stack = append(stack, frame{object: v == '{'})
		case string:
			if err := enc.Encode(v); err != nil {
				return nil, err
			}
			out.Truncate(out.Len() - 1) // Encode appends a newline
		case json.Number:
			out.WriteString(v.String())
		case bool:
			out.WriteString(strconv.FormatBool(v))
		case nil:
			out.WriteString("null")
		}
	}
	return out.Bytes(), nil
}
