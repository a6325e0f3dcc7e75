// Package office pulls plain text out of OOXML documents when they cannot
// be converted to an image.
package office

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/smartname/internal/core/domain"
)

const (
	maxSlides    = 5
	documentPart = "word/document.xml"
	slidePrefix  = "ppt/slides/slide"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) ExtractText(ctx context.Context, file domain.SupportedFile, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = domain.DefaultMaxSnippetChars
	}
	var (
		blocks []string
		err    error
	)
	switch file.Kind {
	case domain.KindDocument:
		blocks, err = documentText(file.Path)
	case domain.KindSlides:
		blocks, err = slideText(ctx, file.Path)
	case domain.KindSpreadsheet:
		blocks, err = sheetText(file.Path, maxChars)
	default:
		return "", domain.WrapError(domain.ErrUnsupported, "office text", fmt.Errorf("%s", file.Path))
	}
	if err != nil {
		return "", err
	}
	return domain.Snippet(strings.Join(blocks, "\n"), maxChars), nil
}

// documentText returns the non-empty paragraphs of a .docx body.
func documentText(docPath string) ([]string, error) {
	archive, err := zip.OpenReader(docPath)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer archive.Close()

	part, err := archive.Open(documentPart)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer part.Close()
	return xmlBlocks(part, "")
}

// slideText returns the text of every shape on the first slides, in slide order.
func slideText(ctx context.Context, deckPath string) ([]string, error) {
	archive, err := zip.OpenReader(deckPath)
	if err != nil {
		return nil, fmt.Errorf("open pptx: %w", err)
	}
	defer archive.Close()

	slides := orderedSlides(archive.File)
	if len(slides) > maxSlides {
		slides = slides[:maxSlides]
	}
	var blocks []string
	for _, f := range slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", f.Name, err)
		}
		shapes, err := xmlBlocks(rc, "sp")
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name, err)
		}
		blocks = append(blocks, shapes...)
	}
	return blocks, nil
}

// orderedSlides picks ppt/slides/slideN.xml parts sorted by N.
func orderedSlides(files []*zip.File) []*zip.File {
	type numbered struct {
		n    int
		file *zip.File
	}
	var slides []numbered
	for _, f := range files {
		if path.Dir(f.Name) != path.Dir(slidePrefix) || !strings.HasPrefix(f.Name, slidePrefix) || path.Ext(f.Name) != ".xml" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(f.Name, slidePrefix), ".xml"))
		if err != nil {
			continue
		}
		slides = append(slides, numbered{n: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })
	out := make([]*zip.File, len(slides))
	for i, s := range slides {
		out[i] = s.file
	}
	return out
}

// xmlBlocks walks DrawingML/WordprocessingML text. With an empty container
// every non-empty paragraph is a block; otherwise the paragraphs inside each
// container element are joined with newlines to form one block and
// paragraphs outside any container (table frames) are skipped.
func xmlBlocks(r io.Reader, container string) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var (
		blocks []string
		paras  []string
		para   strings.Builder
		inText bool
		inside int
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return blocks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inText = true
			case container:
				inside++
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				text := para.String()
				para.Reset()
				if container == "" {
					if strings.TrimSpace(text) != "" {
						blocks = append(blocks, text)
					}
					continue
				}
				if inside > 0 {
					paras = append(paras, text)
				}
			case container:
				inside--
				if inside > 0 {
					continue
				}
				text := strings.Join(paras, "\n")
				paras = paras[:0]
				if strings.TrimSpace(text) != "" {
					blocks = append(blocks, text)
				}
			}
		case xml.CharData:
			if inText {
				para.Write(el)
			}
		}
	}
}

// sheetText returns the rows of the first worksheet as tab-separated lines.
func sheetText(bookPath string, maxChars int) ([]string, error) {
	book, err := excelize.OpenFile(bookPath)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	var lines []string
	total := 0
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				cells = append(cells, cell)
			}
		}
		if len(cells) == 0 {
			continue
		}
		line := strings.Join(cells, "\t")
		lines = append(lines, line)
		total += utf8.RuneCountInString(line) + 1
		if total > maxChars {
			break
		}
	}
	return lines, nil
}
