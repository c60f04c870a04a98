package chunk

import (
	"regexp"
	"strings"
	"unicode"
)

var tableDelimiter = regexp.MustCompile(`^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)+\|?\s*$`)

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.Contains(trimmed, "|")
}

func endsSentence(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}

// sentenceBuffer collects sentence fragments until a terminator closes them.
type sentenceBuffer struct {
	current   strings.Builder
	sentences []string
}

func (b *sentenceBuffer) flush() {
	if b.current.Len() == 0 {
		return
	}
	if s := strings.TrimSpace(b.current.String()); s != "" {
		b.sentences = append(b.sentences, s)
	}
	b.current.Reset()
}

func (b *sentenceBuffer) addLine(line string) {
	for _, part := range splitLine(line) {
		if b.current.Len() > 0 {
			b.current.WriteString(" ")
		}
		b.current.WriteString(part)
		if endsSentence(part) {
			b.flush()
		}
	}
}

// splitSentences splits text into sentences. Lines without a terminator are
// joined with the following line. A markdown table (header row followed by
// a delimiter row) is kept whole as one sentence.
func splitSentences(text string) []string {
	lines := strings.Split(text, "\n")
	buf := &sentenceBuffer{}
	inTable := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if inTable {
			if isTableRow(line) {
				buf.current.WriteString("\n")
				buf.current.WriteString(line)
				continue
			}
			inTable = false
			buf.flush()
			if trimmed != "" {
				buf.addLine(trimmed)
			}
			continue
		}

		if isTableRow(line) {
			buf.flush()
			if i+1 < len(lines) && tableDelimiter.MatchString(strings.TrimSpace(lines[i+1])) {
				inTable = true
				buf.current.WriteString(line)
				continue
			}
			buf.sentences = append(buf.sentences, trimmed)
			continue
		}

		if trimmed == "" {
			buf.flush()
			continue
		}
		buf.addLine(trimmed)
	}
	buf.flush()

	return buf.sentences
}

// splitLine splits one line at sentence terminators. A terminator directly
// after a digit and followed by a space ("1. First") is a list marker, not
// the end of a sentence. Closing quotes and brackets stay with the sentence.
func splitLine(line string) []string {
	var parts []string
	var current strings.Builder

	for i := 0; i < len(line); i++ {
		current.WriteByte(line[i])
		if !isTerminator(line[i]) {
			continue
		}
		if i > 0 && unicode.IsDigit(rune(line[i-1])) && i+1 < len(line) && line[i+1] == ' ' {
			continue
		}

		j := i + 1
		for j < len(line) && isTerminator(line[j]) {
			current.WriteByte(line[j])
			j++
		}
		for j < len(line) && strings.IndexByte(`"')]}`, line[j]) >= 0 {
			current.WriteByte(line[j])
			j++
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, s)
		}
		current.Reset()
		i = j - 1
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
