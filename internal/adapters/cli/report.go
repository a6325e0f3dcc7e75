package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/kirillkom/smartname/internal/core/domain"
)

var rule = strings.Repeat("=", 60)

// Reporter prints run progress in the console layout users of the rename
// tool expect. It implements ports.Reporter.
type Reporter struct {
	out  io.Writer
	info domain.RunInfo

	ok   *color.Color
	fail *color.Color
	warn *color.Color
	head *color.Color

	lastCategory string
}

// NewReporter writes to out. Colors are disabled when plain is true.
func NewReporter(out io.Writer, plain bool) *Reporter {
	r := &Reporter{
		out:  out,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed),
		warn: color.New(color.FgYellow),
		head: color.New(color.FgCyan, color.Bold),
	}
	if plain {
		for _, c := range []*color.Color{r.ok, r.fail, r.warn, r.head} {
			c.DisableColor()
		}
	}
	return r
}

func (r *Reporter) Start(info domain.RunInfo) {
	r.info = info
	r.lastCategory = ""
	organize := info.Mode == domain.ModeOrganize

	verb := "process"
	if organize {
		verb = "organize"
	}
	fmt.Fprintf(r.out, "Found %d files to %s\n", info.Files, verb)
	fmt.Fprintf(r.out, "Model: %s\n", info.Model)
	if organize {
		fmt.Fprintf(r.out, "Categories: %s\n", strings.Join(info.Categories, ", "))
		fmt.Fprintf(r.out, "Rename files: %s\n", yesNo(info.RenameInFolders))
		if info.RenameInFolders {
			fmt.Fprintf(r.out, "Case style: %s\n", info.CaseStyle)
		}
	} else {
		fmt.Fprintf(r.out, "Case style: %s\n", info.CaseStyle)
	}
	fmt.Fprintf(r.out, "Mode: %s\n\n", r.modeLabel())

	if info.Files == 0 {
		r.warn.Fprintf(r.out, "No supported files found in %s\n", info.Directory)
	}
}

func (r *Reporter) Analyzed(file domain.SupportedFile, outcome string) {
	fmt.Fprintf(r.out, "Analyzing: %s\n", file.Name())
	fmt.Fprintf(r.out, "  → %s\n", outcome)
}

func (r *Reporter) FileFailed(failure domain.FileFailure) {
	r.fail.Fprintf(r.out, "  Error processing %s (%s): %s\n", filepath.Base(failure.Path), failure.Stage, failure.Reason)
}

func (r *Reporter) PlanReady(plan domain.Plan) {
	title := "RENAME SUMMARY"
	if plan.Mode == domain.ModeOrganize {
		title = "ORGANIZATION SUMMARY"
	}
	fmt.Fprintf(r.out, "\n%s\n", rule)
	r.head.Fprintln(r.out, title)
	fmt.Fprintln(r.out, rule)

	if len(plan.Entries) == 0 {
		fmt.Fprintln(r.out, "\nNothing to change.")
		return
	}
	if r.info.Execute {
		return
	}
	if plan.Mode != domain.ModeOrganize {
		for _, entry := range plan.Entries {
			r.printEntry(entry)
		}
		return
	}
	keys, groups := plan.ByCategory()
	for _, key := range keys {
		for _, entry := range groups[key] {
			r.printEntry(entry)
		}
	}
}

func (r *Reporter) Moved(result domain.MoveResult) {
	r.printEntry(result.Entry)
	indent := "  "
	done := "Renamed"
	if r.info.Mode == domain.ModeOrganize {
		indent = "    "
		done = "Organized"
	}
	if result.Err != nil {
		r.fail.Fprintf(r.out, "%s✗ Error: %v\n", indent, result.Err)
		return
	}
	r.ok.Fprintf(r.out, "%s✓ %s\n", indent, done)
}

func (r *Reporter) Finish(report domain.RunReport) {
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "Scanned: %d  Planned: %d  Failed: %d", report.Scanned, len(report.Plan.Entries), len(report.Failures))
	if report.Executed {
		fmt.Fprintf(r.out, "  Moved: %d  Move errors: %d", len(report.Moves)-report.MoveFailures(), report.MoveFailures())
	}
	fmt.Fprintln(r.out)

	if !report.Executed {
		action := "rename"
		if report.Plan.Mode == domain.ModeOrganize {
			action = "organize"
		}
		r.warn.Fprintf(r.out, "\nThis was a DRY RUN. Use --execute to actually %s files.\n", action)
	}
}

func (r *Reporter) printEntry(entry domain.PlanEntry) {
	oldName := filepath.Base(entry.Source)
	if r.info.Mode != domain.ModeOrganize {
		fmt.Fprintf(r.out, "\n%s\n", oldName)
		fmt.Fprintf(r.out, "  → %s\n", filepath.Base(entry.Destination))
		return
	}
	if entry.Category != r.lastCategory {
		r.head.Fprintf(r.out, "\n[%s]\n", strings.ToUpper(entry.Category))
		r.lastCategory = entry.Category
	}
	fmt.Fprintf(r.out, "  %s\n", oldName)
	fmt.Fprintf(r.out, "    → %s\n", r.relative(entry.Destination))
}

func (r *Reporter) relative(path string) string {
	if r.info.Directory == "" {
		return path
	}
	rel, err := filepath.Rel(r.info.Directory, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (r *Reporter) modeLabel() string {
	switch {
	case !r.info.Execute:
		return "DRY RUN"
	case r.info.Mode == domain.ModeOrganize:
		return "ORGANIZING"
	default:
		return "RENAMING"
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
