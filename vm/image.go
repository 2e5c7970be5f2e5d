package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseImage parses a program image: comma-separated base-10 signed
// integers, with optional surrounding whitespace and trailing newline.
// The result loads verbatim into memory addresses 0..len-1.
func ParseImage(text string) ([]int64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("vm: empty program image")
	}

	fields := strings.Split(trimmed, ",")
	image := make([]int64, len(fields))
	for i, field := range fields {
		value, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vm: bad program image value %q at position %d: %w", field, i, err)
		}
		image[i] = value
	}
	return image, nil
}

// LoadImage parses a textual program image and loads it into the
// machine.
func (m *VM) LoadImage(text string) error {
	image, err := ParseImage(text)
	if err != nil {
		return err
	}
	m.Load(image)
	return nil
}
