package chunker

import (
	"regexp"
	"strings"
)

// blankLine matches one or more blank lines separating paragraphs.
var blankLine = regexp.MustCompile(`\n[ \t\r]*\n(?:[ \t\r]*\n)*`)

// Split cuts text into chunks suitable for embedding. Paragraphs are packed
// together while they fit within maxChunkSize*4 characters; a paragraph that
// is too large on its own is split into sentences and packed at sentence
// granularity. The *4 multiplier is a rough character-to-token ratio.
//
// No text is ever dropped: a single sentence or terminator-free paragraph
// larger than the bound becomes one oversized chunk.
func Split(text string, maxChunkSize int) []string {
	limit := maxChunkSize * 4

	var paragraphs []string
	for _, p := range blankLine.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	var buf string

	flush := func() {
		if buf != "" {
			chunks = append(chunks, buf)
			buf = ""
		}
	}

	for _, p := range paragraphs {
		sep := ""
		if buf != "" {
			sep = "\n\n"
		}
		if len(buf)+len(sep)+len(p) <= limit {
			buf += sep + p
			continue
		}

		flush()

		if len(p) <= limit {
			buf = p
			continue
		}

		// Paragraph exceeds the bound on its own: fall back to sentences.
		for _, s := range splitSentences(p) {
			switch {
			case buf == "":
				buf = s
			case len(buf)+1+len(s) <= limit:
				buf += " " + s
			default:
				flush()
				buf = s
			}
		}
	}
	flush()

	return chunks
}

// splitSentences scans for runs of text ending in '.', '!' or '?'. Trailing
// text without a terminator is kept as a final sentence; a paragraph with no
// terminator at all comes back whole.
func splitSentences(p string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(p); i++ {
		if !isTerminator(p[i]) {
			continue
		}
		for i+1 < len(p) && isTerminator(p[i+1]) {
			i++
		}
		if s := strings.TrimSpace(p[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if rest := strings.TrimSpace(p[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	if len(sentences) == 0 {
		return []string{p}
	}
	return sentences
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
