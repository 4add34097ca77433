package manifest

import "bytes"

const (
	// DefaultIndent is assumed when a document contains no indented lines.
	DefaultIndent = "  "
	// LineEndingLF is the Unix newline convention.
	LineEndingLF = "\n"
	// LineEndingCRLF is the Windows newline convention.
	LineEndingCRLF = "\r\n"
)

const (
	spaceByteConstant          = ' '
	tabByteConstant            = '\t'
	carriageReturnByteConstant = '\r'
	newlineByteConstant        = '\n'
)

// DetectLineEnding inspects raw document bytes and reports the newline
// convention, defaulting to LF.
func DetectLineEnding(data []byte) string {
	if bytes.Contains(data, []byte(LineEndingCRLF)) {
		return LineEndingCRLF
	}
	return LineEndingLF
}

// DetectIndent inspects raw document bytes and returns the indentation unit of
// the first indented line. The first indented line of a JSON object sits one
// level deep, so its leading whitespace run is the unit itself.
func DetectIndent(data []byte) string {
	lines := bytes.Split(data, []byte(LineEndingLF))
	for _, line := range lines {
		trimmedLine := bytes.TrimSuffix(line, []byte{carriageReturnByteConstant})
		leadingWhitespace := leadingWhitespaceRun(trimmedLine)
		if len(leadingWhitespace) == 0 {
			continue
		}
		if len(bytes.TrimSpace(trimmedLine)) == 0 {
			continue
		}
		return string(leadingWhitespace)
	}
	return DefaultIndent
}

func leadingWhitespaceRun(line []byte) []byte {
	runLength := 0
	for runLength < len(line) {
		if line[runLength] != spaceByteConstant && line[runLength] != tabByteConstant {
			break
		}
		runLength++
	}
	return line[:runLength]
}
