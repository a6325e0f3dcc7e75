package usecase

import (
	"fmt"
	"strings"

	"github.com/kirillkom/smartname/internal/core/domain"
)

const (
	nameRules = "(5-8 words max, use underscores instead of spaces). "
	nameOnly  = "Only respond with the filename, nothing else."
	labelOnly = "Respond with ONLY the category name, nothing else."
)

// kindPrompts builds the instruction text for one file kind. visual prompts
// are used when extraction produced an image, textual ones when it produced
// a snippet.
type kindPrompts struct {
	visualName     string
	visualCategory string
	textName       func(file domain.SupportedFile, snippet string) string
	textCategory   func(file domain.SupportedFile, snippet string) string
}

func (p kindPrompts) name(file domain.SupportedFile, art domain.Artifact) string {
	if art.HasImage() || p.textName == nil {
		return p.visualName
	}
	return p.textName(file, art.Text)
}

func (p kindPrompts) category(file domain.SupportedFile, art domain.Artifact, labels []string) string {
	list := strings.Join(labels, ", ")
	if art.HasImage() || p.textCategory == nil {
		return fmt.Sprintf(p.visualCategory, list)
	}
	return p.textCategory(file, art.Text) + fmt.Sprintf("Categorize it into ONE of these categories: %s.\n", list) + labelOnly
}

func contentNamePrompt(what string) func(domain.SupportedFile, string) string {
	return func(_ domain.SupportedFile, snippet string) string {
		return fmt.Sprintf("This is the content of %s:\n\n%s\n\n", what, snippet) +
			"Suggest a concise, descriptive filename based on the content " + nameRules + nameOnly
	}
}

func contentCategoryPrompt(what string) func(domain.SupportedFile, string) string {
	return func(_ domain.SupportedFile, snippet string) string {
		return fmt.Sprintf("This is the content of %s:\n\n%s\n\n", what, snippet)
	}
}

func fileContentNamePrompt(file domain.SupportedFile, snippet string) string {
	return contentNamePrompt("a " + file.NormalizedExt() + " file")(file, snippet)
}

func fileContentCategoryPrompt(file domain.SupportedFile, snippet string) string {
	return contentCategoryPrompt("a " + file.NormalizedExt() + " file")(file, snippet)
}

var promptsByKind = map[domain.FileKind]kindPrompts{
	domain.KindImage: {
		visualName: "Analyze this image and suggest a concise, descriptive filename " + nameRules +
			"Focus on the main subject or content. " + nameOnly,
		visualCategory: "Analyze this image and categorize it into ONE of these categories: %s.\n" +
			"Consider the content and purpose of the image.\n" +
			"Examples:\n" +
			"- 'books': textbook pages, book covers, scanned book pages\n" +
			"- 'photos': personal photos, portraits, landscapes, snapshots\n" +
			"- 'figures': charts, graphs, diagrams, scientific figures, infographics\n" +
			"- 'documents': forms, letters, receipts, official documents\n" +
			"- 'screenshots': screen captures, UI screenshots, app interfaces\n" +
			"- 'art': artwork, illustrations, paintings, creative images\n" +
			"- 'presentations': presentation slides, slide decks\n" +
			"- 'code': code snippets, programming screenshots\n" +
			"- 'other': anything that doesn't fit the above categories\n\n" + labelOnly,
	},
	domain.KindPDF: {
		visualName: "This is the first page of a PDF document. " +
			"Analyze it and suggest a concise, descriptive filename " + nameRules +
			"Focus on the document's topic or title. " + nameOnly,
		visualCategory: "Analyze this PDF document and categorize it into ONE of these categories: %s.\n" +
			"Consider the content and purpose of the document.\n" +
			"Examples:\n" +
			"- 'books': textbooks, ebooks, book chapters\n" +
			"- 'documents': forms, letters, reports, official documents\n" +
			"- 'presentations': presentation slides, slide decks\n" +
			"- 'figures': research papers with figures, scientific documents\n" +
			"- 'other': anything that doesn't fit the above categories\n\n" + labelOnly,
		textName:     contentNamePrompt("a PDF document"),
		textCategory: contentCategoryPrompt("a PDF document"),
	},
	domain.KindDocument: {
		visualName: "This is the first page of a Word document. " +
			"Analyze it and suggest a concise, descriptive filename " + nameRules +
			"Focus on the document's topic or title. " + nameOnly,
		visualCategory: "Analyze this Word document and categorize it into ONE of these categories: %s.\n" +
			"Consider the content and purpose.\n" + labelOnly,
		textName:     contentNamePrompt("a Word document"),
		textCategory: contentCategoryPrompt("a Word document"),
	},
	domain.KindSlides: {
		visualName: "This is the first slide of a PowerPoint presentation. " +
			"Analyze it and suggest a concise, descriptive filename " + nameRules +
			"Focus on the presentation's topic or title. " + nameOnly,
		visualCategory: "Analyze this PowerPoint presentation and categorize it into ONE of these categories: %s.\n" +
			labelOnly,
		textName:     contentNamePrompt("a PowerPoint presentation"),
		textCategory: contentCategoryPrompt("a PowerPoint presentation"),
	},
	domain.KindSpreadsheet: {
		visualName: "This is the first page of a spreadsheet. " +
			"Analyze it and suggest a concise, descriptive filename " + nameRules +
			"Focus on what the data is about. " + nameOnly,
		visualCategory: "Analyze this spreadsheet and categorize it into ONE of these categories: %s.\n" +
			labelOnly,
		textName:     contentNamePrompt("an Excel spreadsheet"),
		textCategory: contentCategoryPrompt("an Excel spreadsheet"),
	},
	domain.KindVideo: {
		visualName: "This is a frame from a video. " +
			"Analyze it and suggest a concise, descriptive filename for the video " + nameRules + nameOnly,
		visualCategory: "Analyze this video frame and categorize the video into ONE of these categories: %s.\n" +
			labelOnly,
	},
	domain.KindText: {
		textName:     fileContentNamePrompt,
		textCategory: fileContentCategoryPrompt,
	},
}
