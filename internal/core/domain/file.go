package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FileKind is the extraction category derived from a file extension.
type FileKind string

const (
	KindUnsupported FileKind = ""
	KindImage       FileKind = "image"
	KindPDF         FileKind = "pdf"
	KindDocument    FileKind = "document"
	KindSlides      FileKind = "slides"
	KindSpreadsheet FileKind = "spreadsheet"
	KindVideo       FileKind = "video"
	KindText        FileKind = "text"
)

var extensionKinds = map[string]FileKind{
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".bmp":  KindImage,
	".webp": KindImage,

	".pdf": KindPDF,

	".docx": KindDocument,
	".pptx": KindSlides,
	".xlsx": KindSpreadsheet,

	".mov":  KindVideo,
	".mp4":  KindVideo,
	".avi":  KindVideo,
	".mkv":  KindVideo,
	".webm": KindVideo,

	".txt":   KindText,
	".md":    KindText,
	".ipynb": KindText,
	".py":    KindText,
	".js":    KindText,
	".json":  KindText,
	".html":  KindText,
	".htm":   KindText,
}

// NormalizeExt lowercases an extension and guarantees the leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func KindOf(path string) FileKind {
	return extensionKinds[NormalizeExt(filepath.Ext(path))]
}

// SupportedExtensions returns every recognised extension in lexical order.
func SupportedExtensions() []string {
	out := make([]string, 0, len(extensionKinds))
	for ext := range extensionKinds {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// SupportedFile is a path whose extension maps to a known FileKind.
type SupportedFile struct {
	Path string
	Kind FileKind
}

func NewSupportedFile(path string) (SupportedFile, error) {
	kind := KindOf(path)
	if kind == KindUnsupported {
		return SupportedFile{}, WrapError(ErrUnsupported, "classify file", fmt.Errorf("%q", filepath.Ext(path)))
	}
	return SupportedFile{Path: path, Kind: kind}, nil
}

func (f SupportedFile) Name() string { return filepath.Base(f.Path) }

// Ext keeps the original casing so renamed files retain their suffix verbatim.
func (f SupportedFile) Ext() string { return filepath.Ext(f.Path) }

func (f SupportedFile) NormalizedExt() string { return NormalizeExt(f.Ext()) }

func (f SupportedFile) Stem() string {
	name := f.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Artifact is the inference-ready output of content extraction. At most one
// of ImagePath and Text is populated.
type Artifact struct {
	ImagePath string
	Text      string
}

func ImageArtifact(path string) Artifact { return Artifact{ImagePath: path} }

func TextArtifact(text string) Artifact { return Artifact{Text: text} }

func (a Artifact) HasImage() bool { return a.ImagePath != "" }

func (a Artifact) HasText() bool { return strings.TrimSpace(a.Text) != "" }

func (a Artifact) Empty() bool { return !a.HasImage() && !a.HasText() }
