package site

import (
	"bytes"
)

// clean strips trailing whitespace from every line, drops trailing blank
// lines and ends the content with exactly one newline.
func clean(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))

	var out bytes.Buffer

	out.Grow(len(content))

	for _, line := range lines {
		out.Write(bytes.TrimRight(line, " \t\r"))
		out.WriteByte('\n')
	}

	trimmed := bytes.TrimRight(out.Bytes(), "\n")
	if len(trimmed) == 0 {
		return []byte{}
	}

	return append(trimmed, '\n')
}
