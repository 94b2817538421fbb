// File: pkg/scan/classify.go
package scan

import (
	"bytes"
)

const (
	// SampleSize is how many leading bytes are inspected for
	// classification. The whole file is never read at this stage.
	SampleSize = 4096

	// nonPrintableRatio is the fraction of non-printable bytes above
	// which a sample is considered binary.
	nonPrintableRatio = 0.30
)

// IsBinary reports whether a sampled prefix looks like binary content.
// A zero byte is decisive; otherwise the non-printable byte ratio is
// compared against a fixed threshold. Empty samples are text.
func IsBinary(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(sample)) > nonPrintableRatio
}

// isPrintable checks if a byte represents a printable ASCII character
// or common whitespace. Bytes above 127 are allowed so UTF-8 text is
// not misclassified.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 128
}
