package markdown

import "strings"

const boldDelim = "**"

type inlineState int

const (
	statePlain inlineState = iota
	stateBold
)

// ParseInline splits text into runs on paired ** delimiters.
//
// A delimiter pair with nothing between it stays literal, and so does a
// trailing ** that is never closed.
func ParseInline(text string) []Run {
	var (
		runs  []Run
		plain strings.Builder
		span  strings.Builder
		state = statePlain
	)

	flushPlain := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], boldDelim) {
			switch state {
			case statePlain:
				state = stateBold
			case stateBold:
				if span.Len() == 0 {
					plain.WriteString(boldDelim + boldDelim)
				} else {
					flushPlain()
					runs = append(runs, Run{Text: span.String(), Bold: true})
					span.Reset()
				}
				state = statePlain
			}
			i += len(boldDelim)
			continue
		}

		if state == stateBold {
			span.WriteByte(text[i])
		} else {
			plain.WriteByte(text[i])
		}
		i++
	}

	if state == stateBold {
		plain.WriteString(boldDelim)
		plain.WriteString(span.String())
	}
	flushPlain()

	return runs
}
