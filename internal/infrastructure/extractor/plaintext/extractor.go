package plaintext

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/ports"
)

// bytesPerChar bounds how much is read for a snippet of maxChars runes.
const bytesPerChar = 4

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

// ExtractText returns the leading maxChars characters of a text file. HTML
// is reduced to its visible text first. Undecodable content yields "".
func (e *Extractor) ExtractText(ctx context.Context, file domain.SupportedFile, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = domain.DefaultMaxSnippetChars
	}
	reader, err := e.storage.Open(ctx, file.Path)
	if err != nil {
		return "", fmt.Errorf("open text file: %w", err)
	}
	defer reader.Close()

	if isHTML(file) {
		return domain.Snippet(visibleText(reader, maxChars), maxChars), nil
	}

	limit := int64(maxChars+1) * bytesPerChar
	raw, err := io.ReadAll(io.LimitReader(reader, limit))
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	raw = trimPartialRune(raw)
	if !utf8.Valid(raw) {
		return "", nil
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", nil
	}
	return domain.Snippet(text, maxChars), nil
}

func isHTML(file domain.SupportedFile) bool {
	ext := file.NormalizedExt()
	return ext == ".html" || ext == ".htm"
}

// visibleText collects text nodes outside script and style elements until
// slightly more than maxChars runes are gathered.
func visibleText(r io.Reader, maxChars int) string {
	tokenizer := html.NewTokenizer(r)
	var b strings.Builder
	skip := 0
	count := 0
	for count <= maxChars {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.StartTagToken:
			if hidden(tokenizer) {
				skip++
			}
		case html.EndTagToken:
			if hidden(tokenizer) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(text)
			count += utf8.RuneCountInString(text) + 1
		}
	}
	return strings.TrimSpace(b.String())
}

func hidden(tokenizer *html.Tokenizer) bool {
	name, _ := tokenizer.TagName()
	switch atom.Lookup(name) {
	case atom.Script, atom.Style, atom.Noscript, atom.Template:
		return true
	default:
		return false
	}
}

// trimPartialRune drops an incomplete UTF-8 sequence left by a bounded read.
func trimPartialRune(raw []byte) []byte {
	if utf8.Valid(raw) {
		return raw
	}
	for cut := 1; cut < utf8.UTFMax && cut <= len(raw); cut++ {
		if utf8.Valid(raw[:len(raw)-cut]) {
			return raw[:len(raw)-cut]
		}
	}
	return raw
}
