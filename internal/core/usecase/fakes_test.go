package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kirillkom/smartname/internal/core/domain"
)

type inferenceCall struct {
	req domain.InferenceRequest
}

type inferenceFake struct {
	mu    sync.Mutex
	reply func(req domain.InferenceRequest) (string, error)
	calls []inferenceCall
}

func replyWith(text string) *inferenceFake {
	return &inferenceFake{reply: func(domain.InferenceRequest) (string, error) { return text, nil }}
}

func (f *inferenceFake) Generate(_ context.Context, req domain.InferenceRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inferenceCall{req: req})
	f.mu.Unlock()
	return f.reply(req)
}

type rasterizerFake struct {
	pages     int
	renderErr error
	rendered  []string
}

func (f *rasterizerFake) PageCount(context.Context, string) (int, error) {
	return f.pages, nil
}

func (f *rasterizerFake) RenderPage(_ context.Context, pdfPath string, pageIndex, _ int, outPath string) error {
	if f.renderErr != nil {
		return f.renderErr
	}
	f.rendered = append(f.rendered, outPath)
	return nil
}

type converterFake struct {
	convertErr error
	frameErr   error
	frames     []time.Duration
}

func (f *converterFake) ConvertToPDF(_ context.Context, srcPath, outDir string) (string, error) {
	if f.convertErr != nil {
		return "", f.convertErr
	}
	base := filepath.Base(srcPath)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf"), nil
}

func (f *converterFake) ExtractFrame(_ context.Context, _ string, at time.Duration, _ string) error {
	f.frames = append(f.frames, at)
	return f.frameErr
}

type textFake struct {
	text string
	err  error
}

func (f *textFake) ExtractText(context.Context, domain.SupportedFile, int) (string, error) {
	return f.text, f.err
}

type scratchFake struct {
	root string
}

func (s scratchFake) Dir() (string, error) { return s.root, nil }

func (s scratchFake) Path(name string) (string, error) { return filepath.Join(s.root, name), nil }

// memStore is an in-memory FileStore keyed by cleaned path.
type memStore struct {
	files   map[string][]byte
	moveErr map[string]error
	moves   [][2]string
}

func newMemStore(paths ...string) *memStore {
	s := &memStore{files: make(map[string][]byte), moveErr: make(map[string]error)}
	for _, p := range paths {
		s.files[filepath.Clean(p)] = nil
	}
	return s
}

func (s *memStore) Save(_ context.Context, key string, data io.Reader) error {
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.files[filepath.Clean(key)] = body
	return nil
}

func (s *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	body, ok := s.files[filepath.Clean(key)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *memStore) ListFiles(_ context.Context, dir string) ([]string, error) {
	dir = filepath.Clean(dir)
	var out []string
	for p := range s.files {
		if filepath.Dir(p) == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *memStore) Exists(_ context.Context, path string) (bool, error) {
	_, ok := s.files[filepath.Clean(path)]
	return ok, nil
}

func (s *memStore) Move(_ context.Context, src, dst string) error {
	if err := s.moveErr[src]; err != nil {
		return err
	}
	body, ok := s.files[src]
	if !ok {
		return os.ErrNotExist
	}
	if _, exists := s.files[dst]; exists {
		return errors.New("destination exists")
	}
	delete(s.files, src)
	s.files[dst] = body
	s.moves = append(s.moves, [2]string{src, dst})
	return nil
}

func (s *memStore) paths() []string {
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

type recorderFake struct {
	analyzed []error
	moved    []error
}

func (r *recorderFake) FileAnalyzed(_ string, err error) { r.analyzed = append(r.analyzed, err) }

func (r *recorderFake) FileMoved(err error) { r.moved = append(r.moved, err) }

type reporterFake struct {
	info     domain.RunInfo
	analyzed []string
	failures []domain.FileFailure
	plan     domain.Plan
	moved    []domain.MoveResult
	finished bool
}

func (r *reporterFake) Start(info domain.RunInfo) { r.info = info }

func (r *reporterFake) Analyzed(_ domain.SupportedFile, outcome string) {
	r.analyzed = append(r.analyzed, outcome)
}

func (r *reporterFake) FileFailed(failure domain.FileFailure) { r.failures = append(r.failures, failure) }

func (r *reporterFake) PlanReady(plan domain.Plan) { r.plan = plan }

func (r *reporterFake) Moved(result domain.MoveResult) { r.moved = append(r.moved, result) }

func (r *reporterFake) Finish(domain.RunReport) { r.finished = true }

type pipeline struct {
	raster    *rasterizerFake
	converter *converterFake
	text      *textFake
	client    *inferenceFake
	extractor *ContentExtractor
	suggester *FilenameSuggester
	category  *Categorizer
}

func newPipeline(client *inferenceFake) *pipeline {
	p := &pipeline{
		raster:    &rasterizerFake{pages: 1},
		converter: &converterFake{},
		text:      &textFake{},
		client:    client,
	}
	p.extractor = NewContentExtractor(p.raster, p.converter, p.text, scratchFake{root: "/scratch"}, nil, ContentExtractorConfig{})
	p.suggester = NewFilenameSuggester(p.extractor, client, "llava:latest", 0, nil)
	p.category = NewCategorizer(p.extractor, client, "llava:latest", nil)
	return p
}
