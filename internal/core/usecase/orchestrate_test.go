package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kirillkom/smartname/internal/core/domain"
)

func newTestOrchestrator(store *memStore, client *inferenceFake) (*Orchestrator, *pipeline, *recorderFake) {
	p := newPipeline(client)
	recorder := &recorderFake{}
	return NewOrchestrator(store, p.suggester, p.category, recorder, nil, "llava:latest"), p, recorder
}

func TestRunRenamesCollidingSuggestionsWithSuffix(t *testing.T) {
	store := newMemStore("/docs/scan_001.pdf", "/docs/scan_002.pdf")
	uc, _, _ := newTestOrchestrator(store, replyWith("Chapter One Overview"))

	report, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/docs"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []domain.PlanEntry{
		{Source: "/docs/scan_001.pdf", Destination: "/docs/chapter_one_overview.pdf"},
		{Source: "/docs/scan_002.pdf", Destination: "/docs/chapter_one_overview_1.pdf"},
	}
	if !reflect.DeepEqual(report.Plan.Entries, want) {
		t.Fatalf("plan = %+v", report.Plan.Entries)
	}
	if report.Plan.Mode != domain.ModeRename || report.RunID == "" {
		t.Fatalf("unexpected report header: %+v", report)
	}
}

func TestRunDryRunLeavesFilesUntouched(t *testing.T) {
	store := newMemStore("/docs/a.png", "/docs/b.png", "/docs/notes.txt")
	before := store.paths()
	uc, _, recorder := newTestOrchestrator(store, replyWith("renamed thing"))
	reporter := &reporterFake{}

	report, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/docs"}, reporter)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Executed || len(report.Moves) != 0 {
		t.Fatalf("dry run must not move files: %+v", report.Moves)
	}
	if !reflect.DeepEqual(store.paths(), before) {
		t.Fatalf("filesystem changed: %v", store.paths())
	}
	if len(recorder.moved) != 0 || len(reporter.moved) != 0 {
		t.Fatalf("no move events expected")
	}
	if !reporter.finished || len(reporter.plan.Entries) == 0 {
		t.Fatalf("reporter should see the plan and the finish event")
	}
}

func TestRunSkipsUnsupportedFiles(t *testing.T) {
	store := newMemStore("/d/archive.zip", "/d/photo.png", "/d/README")
	uc, _, _ := newTestOrchestrator(store, replyWith("beach"))
	reporter := &reporterFake{}

	report, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/d"}, reporter)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Scanned != 1 || reporter.info.Files != 1 {
		t.Fatalf("scanned = %d", report.Scanned)
	}
}

func TestRunAvoidsExistingFilesAndDropsUnchanged(t *testing.T) {
	store := newMemStore("/d/a.png", "/d/sunset.png")
	uc, _, _ := newTestOrchestrator(store, replyWith("Sunset"))

	report, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/d"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []domain.PlanEntry{{Source: "/d/a.png", Destination: "/d/sunset_1.png"}}
	if !reflect.DeepEqual(report.Plan.Entries, want) {
		t.Fatalf("plan = %+v", report.Plan.Entries)
	}
}

func TestRunRecordsPerFileFailuresAndContinues(t *testing.T) {
	store := newMemStore("/d/a.png", "/d/b.png")
	client := &inferenceFake{reply: func(req domain.InferenceRequest) (string, error) {
		if req.Images[0] == "/d/a.png" {
			return "", errors.New("ollama returned status 500")
		}
		return "second image", nil
	}}
	uc, _, recorder := newTestOrchestrator(store, client)
	reporter := &reporterFake{}

	report, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/d"}, reporter)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Failures) != 1 || report.Failures[0].Path != "/d/a.png" || report.Failures[0].Stage != stageSuggest {
		t.Fatalf("failures = %+v", report.Failures)
	}
	if len(reporter.failures) != 1 {
		t.Fatalf("reporter failures = %+v", reporter.failures)
	}
	want := []domain.PlanEntry{{Source: "/d/b.png", Destination: "/d/second_image.png"}}
	if !reflect.DeepEqual(report.Plan.Entries, want) {
		t.Fatalf("plan = %+v", report.Plan.Entries)
	}
	if len(recorder.analyzed) != 2 || recorder.analyzed[0] == nil || recorder.analyzed[1] != nil {
		t.Fatalf("recorder = %+v", recorder.analyzed)
	}
}

func TestRunOrganizeExecutesGroupedByCategory(t *testing.T) {
	store := newMemStore("/in/holiday.png", "/in/main.py")
	client := &inferenceFake{reply: func(req domain.InferenceRequest) (string, error) {
		if req.Shape() == "vision" {
			return "photos", nil
		}
		return "code", nil
	}}
	uc, p, recorder := newTestOrchestrator(store, client)
	p.text.text = "def main():\n    pass"
	reporter := &reporterFake{}

	report, err := uc.Run(context.Background(), domain.RunRequest{
		Directory: "/in",
		Mode:      domain.ModeOrganize,
		Execute:   true,
	}, reporter)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	wantMoves := [][2]string{
		{"/in/main.py", "/in/code/main.py"},
		{"/in/holiday.png", "/in/photos/holiday.png"},
	}
	if !reflect.DeepEqual(store.moves, wantMoves) {
		t.Fatalf("moves = %v", store.moves)
	}
	if report.MoveFailures() != 0 || len(recorder.moved) != 2 {
		t.Fatalf("unexpected move outcome: %+v", report.Moves)
	}
	if reporter.analyzed[0] != "photos" || reporter.analyzed[1] != "code" {
		t.Fatalf("analyzed = %v", reporter.analyzed)
	}
}

func TestRunOrganizeRenameInFolders(t *testing.T) {
	store := newMemStore("/in/IMG_1.png")
	client := &inferenceFake{reply: func(req domain.InferenceRequest) (string, error) {
		if strings.Contains(req.Prompt, "categorize") {
			return "photos", nil
		}
		return "Beach Day", nil
	}}
	uc, _, _ := newTestOrchestrator(store, client)

	report, err := uc.Run(context.Background(), domain.RunRequest{
		Directory:       "/in",
		Mode:            domain.ModeOrganize,
		CaseStyle:       "pascal",
		RenameInFolders: true,
	}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []domain.PlanEntry{{Source: "/in/IMG_1.png", Destination: "/in/photos/BeachDay.png", Category: "photos"}}
	if !reflect.DeepEqual(report.Plan.Entries, want) {
		t.Fatalf("plan = %+v", report.Plan.Entries)
	}
}

func TestRunRenameInFoldersIgnoredWithoutOrganize(t *testing.T) {
	store := newMemStore("/in/IMG_1.png")
	client := replyWith("beach day")
	uc, _, _ := newTestOrchestrator(store, client)
	reporter := &reporterFake{}

	_, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/in", RenameInFolders: true}, reporter)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if reporter.info.RenameInFolders {
		t.Fatalf("rename-in-folders must be ignored in rename mode")
	}
	if len(client.calls) != 1 {
		t.Fatalf("expected a single suggest call, got %d", len(client.calls))
	}
}

func TestRunMoveFailureDoesNotStopBatch(t *testing.T) {
	store := newMemStore("/d/a.png", "/d/b.png")
	store.moveErr["/d/a.png"] = errors.New("permission denied")
	client := &inferenceFake{reply: func(req domain.InferenceRequest) (string, error) {
		return "new " + strings.TrimSuffix(req.Images[0][3:], ".png"), nil
	}}
	uc, _, recorder := newTestOrchestrator(store, client)

	report, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/d", Execute: true}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Moves) != 2 || report.MoveFailures() != 1 {
		t.Fatalf("moves = %+v", report.Moves)
	}
	if ok, _ := store.Exists(context.Background(), "/d/new_b.png"); !ok {
		t.Fatalf("second move should still happen: %v", store.paths())
	}
	if len(recorder.moved) != 2 || recorder.moved[0] == nil {
		t.Fatalf("recorder moved = %v", recorder.moved)
	}
}

func TestRunRejectsInvalidInput(t *testing.T) {
	uc, _, _ := newTestOrchestrator(newMemStore(), replyWith(""))

	_, err := uc.Run(context.Background(), domain.RunRequest{Directory: "/d", CaseStyle: "screaming"}, nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for case style, got %v", err)
	}
	_, err = uc.Run(context.Background(), domain.RunRequest{Directory: "/d", Mode: "shuffle"}, nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for mode, got %v", err)
	}
	_, err = uc.Run(context.Background(), domain.RunRequest{Directory: "/d", Mode: domain.ModeOrganize, Categories: []string{"../escape"}}, nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for path-like category, got %v", err)
	}
}
