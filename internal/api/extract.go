package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	// ErrNoJSON is returned when a response body contains no JSON value.
	ErrNoJSON = errors.New("no JSON value in response")
	// ErrIncompleteJSON is returned when a JSON value starts but never closes.
	ErrIncompleteJSON = errors.New("incomplete JSON value in response")
)

// scanPasses bounds the bytes ExtractJSON examines to a few passes over
// its input.
const scanPasses = 8

// ExtractJSON returns the first complete JSON object or array in text.
//
// The PHP backend occasionally prints notices or stray output before the
// JSON body. A body that is already valid JSON is returned as is (trimmed);
// otherwise each '{' or '[' is tried in order and the first balanced,
// string-aware match that is valid JSON wins. Openers that an earlier scan
// left unmatched are not rescanned, and the total work is capped at
// scanPasses times the input length, so a garbled body fails in linear time.
func ExtractJSON(text []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(text)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return trimmed, nil
	}

	budget := scanPasses * len(text)
	var skip []bool
	incomplete := false
	for i, ch := range text {
		if ch != '{' && ch != '[' {
			continue
		}
		if skip != nil && skip[i] {
			continue
		}
		if budget <= 0 {
			break
		}

		end, closed, open := matchClose(text, i)
		if len(open) > 0 {
			if skip == nil {
				skip = make([]bool, len(text))
			}
			for _, j := range open {
				skip[j] = true
			}
		}
		if !closed {
			incomplete = true
			budget -= len(text) - i
			continue
		}
		if end < 0 {
			budget -= len(text) - i
			continue
		}
		candidate := text[i : end+1]
		budget -= 2 * len(candidate)
		if json.Valid(candidate) {
			return candidate, nil
		}
	}
	if incomplete {
		return nil, ErrIncompleteJSON
	}
	return nil, ErrNoJSON
}

// matchClose finds the bracket closing the one at start. closed is false
// when the input ends first; end is -1 when a closing bracket of the wrong
// kind is met. In both cases open lists the openers still unmatched where
// the scan stopped: a scan starting at any of them stops there too.
func matchClose(text []byte, start int) (end int, closed bool, open []int) {
	stack := make([]int, 0, 8)
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, i)
		case '}', ']':
			if closerOf(text[stack[len(stack)-1]]) != ch {
				return -1, true, stack
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true, nil
			}
		}
	}
	return -1, false, stack
}

func closerOf(opener byte) byte {
	if opener == '{' {
		return '}'
	}
	return ']'
}
