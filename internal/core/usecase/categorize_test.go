package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kirillkom/smartname/internal/core/domain"
)

func TestCategorizeResolvesReply(t *testing.T) {
	client := replyWith("Screenshots.")
	p := newPipeline(client)

	label, err := p.category.Categorize(context.Background(), mustFile(t, "/in/shot.png"), nil)
	if err != nil {
		t.Fatalf("Categorize: %v", err)
	}
	if label != "screenshots" {
		t.Fatalf("label = %q", label)
	}
	prompt := client.calls[0].req.Prompt
	if !strings.Contains(prompt, "books, photos, figures") {
		t.Fatalf("prompt does not list categories: %q", prompt)
	}
}

func TestCategorizeUnknownReplyGoesToCatchAll(t *testing.T) {
	p := newPipeline(replyWith("a landscape painting of mountains"))
	label, err := p.category.Categorize(context.Background(), mustFile(t, "/in/x.png"), []string{"invoices", "receipts"})
	if err != nil {
		t.Fatalf("Categorize: %v", err)
	}
	if label != domain.OtherCategory {
		t.Fatalf("label = %q", label)
	}
}

func TestCategorizeFallbackPerKind(t *testing.T) {
	cases := []struct {
		path   string
		labels []string
		want   string
	}{
		{path: "/in/a.docx", want: "documents"},
		{path: "/in/a.pptx", want: "presentations"},
		{path: "/in/a.xlsx", want: "documents"},
		{path: "/in/a.py", want: "code"},
		{path: "/in/a.mov", want: "other"},
		{path: "/in/a.docx", labels: []string{"photos"}, want: "other"},
	}
	for _, tc := range cases {
		client := replyWith("photos")
		p := newPipeline(client)
		p.converter.convertErr = errors.New("soffice missing")
		p.converter.frameErr = errors.New("ffmpeg missing")
		p.text.err = errors.New("unreadable")

		label, err := p.category.Categorize(context.Background(), mustFile(t, tc.path), tc.labels)
		if err != nil {
			t.Fatalf("%s: Categorize: %v", tc.path, err)
		}
		if label != tc.want {
			t.Fatalf("%s: label = %q, want %q", tc.path, label, tc.want)
		}
		if len(client.calls) != 0 {
			t.Fatalf("%s: expected no inference calls", tc.path)
		}
	}
}
