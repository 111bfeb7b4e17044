package ingestion

import "strings"

// DefaultChunkSize is the target character length for one fragment.
const DefaultChunkSize = 1500

// MinChunkChars drops trailing slivers too short to carry signal.
const MinChunkChars = 50

// Chunk splits cleaned text into fragment-sized pieces. Splits prefer
// paragraph boundaries, then sentence boundaries, and only cut mid-sentence
// when a single sentence exceeds the chunk size. Chunks shorter than
// MinChunkChars are discarded unless they are the only content.
func Chunk(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para)+2 > size {
			flush(&chunks, &current)
		}
		if len(para) > size {
			for _, piece := range splitLong(para, size) {
				if current.Len() > 0 && current.Len()+len(piece)+1 > size {
					flush(&chunks, &current)
				}
				appendPiece(&current, piece)
			}
			continue
		}
		appendParagraph(&current, para)
	}
	flush(&chunks, &current)

	if len(chunks) == 0 {
		return []string{text[:size]}
	}
	return chunks
}

func appendParagraph(sb *strings.Builder, para string) {
	if sb.Len() > 0 {
		sb.WriteString("\n\n")
	}
	sb.WriteString(para)
}

func appendPiece(sb *strings.Builder, piece string) {
	if sb.Len() > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString(piece)
}

func flush(chunks *[]string, sb *strings.Builder) {
	chunk := strings.TrimSpace(sb.String())
	sb.Reset()
	if chunk == "" {
		return
	}
	if len(chunk) < MinChunkChars && len(*chunks) > 0 {
		return
	}
	*chunks = append(*chunks, chunk)
}

// splitLong breaks an oversized paragraph at sentence ends, hard-cutting
// only when one sentence alone exceeds the size.
func splitLong(para string, size int) []string {
	var pieces []string
	for _, sentence := range splitSentences(para) {
		for len(sentence) > size {
			pieces = append(pieces, strings.TrimSpace(sentence[:size]))
			sentence = sentence[size:]
		}
		sentence = strings.TrimSpace(sentence)
		if sentence != "" {
			pieces = append(pieces, sentence)
		}
	}
	return pieces
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && (i == len(text)-1 || text[i+1] == ' ' || text[i+1] == '\n') {
			sentences = append(sentences, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
