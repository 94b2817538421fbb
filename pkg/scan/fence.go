// File: pkg/scan/fence.go
package scan

import "strings"

// FenceChar is the character repeated to delimit embedded content.
const FenceChar = '`'

// MinFenceLen is the conventional minimum fence width.
const MinFenceLen = 3

// Fence returns a delimiter for embedding content verbatim. The length
// is one more than the longest run of the fence character inside the
// content, floored at MinFenceLen, so the content can never be mistaken
// for the closing delimiter. No escaping of the content is required.
func Fence(content string) string {
	longest := 0
	run := 0
	for i := 0; i < len(content); i++ {
		if content[i] == FenceChar {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	n := longest + 1
	if n < MinFenceLen {
		n = MinFenceLen
	}
	return strings.Repeat(string(FenceChar), n)
}
