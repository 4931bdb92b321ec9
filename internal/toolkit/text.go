// AngelaMos | 2026
// text.go

package toolkit

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

const (
	readingWordsPerMinute  = 238
	speakingWordsPerMinute = 150
)

type TextStatisticsRequest struct {
	Text string `json:"text" validate:"max=1048576"`
}

type TextStatisticsResult struct {
	Characters          int    `json:"characters"`
	CharactersNoSpaces  int    `json:"characters_no_spaces"`
	Words               int    `json:"words"`
	Lines               int    `json:"lines"`
	Sentences           int    `json:"sentences"`
	Paragraphs          int    `json:"paragraphs"`
	Bytes               int    `json:"bytes"`
	BytesHuman          string `json:"bytes_human"`
	ReadingTimeSeconds  int    `json:"reading_time_seconds"`
	SpeakingTimeSeconds int    `json:"speaking_time_seconds"`
}

func TextStatistics() Widget {
	return Typed(func(_ context.Context, req TextStatisticsRequest) (any, error) {
		return AnalyzeText(req.Text), nil
	})
}

func AnalyzeText(text string) TextStatisticsResult {
	res := TextStatisticsResult{
		Characters: utf8.RuneCountInString(text),
		Bytes:      len(text),
		BytesHuman: humanize.Bytes(uint64(len(text))),
		Words:      len(strings.Fields(text)),
	}

	for _, r := range text {
		if !unicode.IsSpace(r) {
			res.CharactersNoSpaces++
		}
	}

	if text != "" {
		res.Lines = strings.Count(text, "\n") + 1
	}

	inSentence := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if inSentence {
				res.Sentences++
			}
			inSentence = false
		case !unicode.IsSpace(r):
			inSentence = true
		}
	}
	if inSentence {
		res.Sentences++
	}

	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if strings.TrimSpace(block) != "" {
			res.Paragraphs++
		}
	}

	res.ReadingTimeSeconds = int(math.Ceil(float64(res.Words) * 60 / readingWordsPerMinute))
	res.SpeakingTimeSeconds = int(math.Ceil(float64(res.Words) * 60 / speakingWordsPerMinute))
	return res
}

var loremWords = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit
sed do eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim
veniam quis nostrud exercitation ullamco laboris nisi aliquip ex ea commodo
consequat duis aute irure in reprehenderit voluptate velit esse cillum fugiat
nulla pariatur excepteur sint occaecat cupidatat non proident sunt culpa qui
officia deserunt mollit anim id est laborum`)

type LoremRequest struct {
	Paragraphs            int   `json:"paragraphs"              validate:"omitempty,min=1,max=50"`
	SentencesPerParagraph int   `json:"sentences_per_paragraph" validate:"omitempty,min=1,max=50"`
	WordsPerSentence      int   `json:"words_per_sentence"      validate:"omitempty,min=3,max=50"`
	StartWithLorem        *bool `json:"start_with_lorem"`
	AsHTML                bool  `json:"as_html"`
}

type LoremResult struct {
	Text       string   `json:"text"`
	Paragraphs []string `json:"paragraphs"`
}

func LoremIpsumGenerator() Widget {
	return Typed(func(_ context.Context, req LoremRequest) (any, error) {
		paragraphs := intOr(req.Paragraphs, 1)
		sentences := intOr(req.SentencesPerParagraph, 3)
		words := intOr(req.WordsPerSentence, 10)

		out := make([]string, 0, paragraphs)
		for p := range paragraphs {
			lines := make([]string, 0, sentences)
			for s := range sentences {
				lorem := p == 0 && s == 0 && boolOr(req.StartWithLorem, true)
				lines = append(lines, loremSentence(words, lorem))
			}
			out = append(out, strings.Join(lines, " "))
		}

		text := strings.Join(out, "\n\n")
		if req.AsHTML {
			text = "<p>" + strings.Join(out, "</p>\n<p>") + "</p>"
		}
		return LoremResult{Text: text, Paragraphs: out}, nil
	})
}

func loremSentence(n int, startWithLorem bool) string {
	words := make([]string, n)
	for i := range words {
		//nolint:gosec // G404: filler text
		words[i] = loremWords[rand.IntN(len(loremWords))]
	}
	if startWithLorem {
		copy(words, []string{"lorem", "ipsum", "dolor", "sit", "amet"}[:min(n, 5)])
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}

func intOr(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

type Emoji struct {
	Emoji      string   `json:"emoji"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Keywords   []string `json:"keywords"`
	CodePoints string   `json:"code_points"`
}

var emojis = []Emoji{
	{Emoji: "😀", Name: "grinning face", Group: "Smileys", Keywords: []string{"happy", "smile"}},
	{Emoji: "😂", Name: "face with tears of joy", Group: "Smileys", Keywords: []string{"laugh", "lol"}},
	{Emoji: "😉", Name: "winking face", Group: "Smileys", Keywords: []string{"wink"}},
	{Emoji: "😍", Name: "smiling face with heart-eyes", Group: "Smileys", Keywords: []string{"love", "crush"}},
	{Emoji: "🤔", Name: "thinking face", Group: "Smileys", Keywords: []string{"hmm", "think"}},
	{Emoji: "😭", Name: "loudly crying face", Group: "Smileys", Keywords: []string{"sad", "cry"}},
	{Emoji: "😡", Name: "enraged face", Group: "Smileys", Keywords: []string{"angry", "mad"}},
	{Emoji: "👍", Name: "thumbs up", Group: "People", Keywords: []string{"yes", "ok", "approve"}},
	{Emoji: "👎", Name: "thumbs down", Group: "People", Keywords: []string{"no", "reject"}},
	{Emoji: "👏", Name: "clapping hands", Group: "People", Keywords: []string{"applause", "bravo"}},
	{Emoji: "🙏", Name: "folded hands", Group: "People", Keywords: []string{"please", "thanks"}},
	{Emoji: "💪", Name: "flexed biceps", Group: "People", Keywords: []string{"strong"}},
	{Emoji: "🐶", Name: "dog face", Group: "Animals", Keywords: []string{"pet", "puppy"}},
	{Emoji: "🐱", Name: "cat face", Group: "Animals", Keywords: []string{"pet", "kitten"}},
	{Emoji: "🦊", Name: "fox", Group: "Animals", Keywords: []string{"animal"}},
	{Emoji: "🐛", Name: "bug", Group: "Animals", Keywords: []string{"insect", "defect"}},
	{Emoji: "🍕", Name: "pizza", Group: "Food", Keywords: []string{"food", "slice"}},
	{Emoji: "☕", Name: "hot beverage", Group: "Food", Keywords: []string{"coffee", "tea"}},
	{Emoji: "🍺", Name: "beer mug", Group: "Food", Keywords: []string{"drink", "bar"}},
	{Emoji: "🚀", Name: "rocket", Group: "Travel", Keywords: []string{"launch", "ship", "deploy"}},
	{Emoji: "✈️", Name: "airplane", Group: "Travel", Keywords: []string{"flight", "travel"}},
	{Emoji: "🔥", Name: "fire", Group: "Travel", Keywords: []string{"hot", "lit"}},
	{Emoji: "⭐", Name: "star", Group: "Travel", Keywords: []string{"favorite"}},
	{Emoji: "🎉", Name: "party popper", Group: "Activities", Keywords: []string{"celebrate", "tada"}},
	{Emoji: "🏆", Name: "trophy", Group: "Activities", Keywords: []string{"win", "award"}},
	{Emoji: "💻", Name: "laptop", Group: "Objects", Keywords: []string{"computer", "code"}},
	{Emoji: "🔒", Name: "locked", Group: "Objects", Keywords: []string{"security", "lock"}},
	{Emoji: "🔑", Name: "key", Group: "Objects", Keywords: []string{"password", "secret"}},
	{Emoji: "📦", Name: "package", Group: "Objects", Keywords: []string{"box", "release"}},
	{Emoji: "🛠️", Name: "hammer and wrench", Group: "Objects", Keywords: []string{"tools", "build"}},
	{Emoji: "✅", Name: "check mark button", Group: "Symbols", Keywords: []string{"done", "ok"}},
	{Emoji: "❌", Name: "cross mark", Group: "Symbols", Keywords: []string{"error", "fail"}},
	{Emoji: "⚠️", Name: "warning", Group: "Symbols", Keywords: []string{"caution", "alert"}},
	{Emoji: "❤️", Name: "red heart", Group: "Symbols", Keywords: []string{"love"}},
}

func init() {
	for i := range emojis {
		emojis[i].CodePoints = codePoints(emojis[i].Emoji)
	}
}

func codePoints(s string) string {
	parts := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		parts = append(parts, fmt.Sprintf("U+%04X", r))
	}
	return strings.Join(parts, " ")
}

type EmojiRequest struct {
	Query string `json:"query" validate:"max=64"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

func EmojiPicker() Widget {
	return Typed(func(_ context.Context, req EmojiRequest) (any, error) {
		q := strings.ToLower(strings.TrimSpace(req.Query))
		limit := intOr(req.Limit, len(emojis))

		matches := []Emoji{}
		for _, e := range emojis {
			if len(matches) == limit {
				break
			}
			if q == "" || emojiMatches(e, q) {
				matches = append(matches, e)
			}
		}
		return matches, nil
	})
}

func emojiMatches(e Emoji, q string) bool {
	if strings.Contains(e.Name, q) || strings.EqualFold(e.Group, q) {
		return true
	}
	for _, k := range e.Keywords {
		if strings.HasPrefix(k, q) {
			return true
		}
	}
	return false
}
