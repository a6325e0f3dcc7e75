package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kirillkom/smartname/internal/core/domain"
	"github.com/kirillkom/smartname/internal/core/naming"
)

type renameFlags struct {
	commonFlags
	execute         bool
	caseStyle       string
	organize        bool
	renameInFolders bool
	categories      []string
	maxNameLength   int
	noColor         bool
}

// NewRenameCommand builds the smartname root command. A nil factory uses
// bootstrap.New.
func NewRenameCommand(factory AppFactory) *cobra.Command {
	factory = defaultFactory(factory)
	f := &renameFlags{}

	cmd := &cobra.Command{
		Use:   "smartname DIRECTORY",
		Short: "Rename or organize files using Ollama vision and text models",
		Long: "Suggests descriptive filenames for images, PDFs, office documents, videos and text files,\n" +
			"or sorts them into category subfolders. Nothing is changed unless --execute is given.\n\n" +
			"Supported extensions: " + strings.Join(domain.SupportedExtensions(), " "),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("model") {
				cfg.Model = f.model
			}
			if flags.Changed("dpi") {
				cfg.RenderDPI = f.dpi
			}
			if flags.Changed("case") {
				cfg.CaseStyle = f.caseStyle
			}
			if flags.Changed("categories") {
				cfg.Categories = f.categories
			}
			if flags.Changed("max-name-length") {
				cfg.MaxNameLength = f.maxNameLength
			}

			if f.renameInFolders && !f.organize {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: --rename-in-folders requires --organize, ignoring flag")
				f.renameInFolders = false
			}

			app, err := factory(cmd.Context(), cfg, "smartname")
			if err != nil {
				return err
			}
			defer app.Close()

			mode := domain.ModeRename
			if f.organize {
				mode = domain.ModeOrganize
			}
			report, err := app.Organizer.Run(cmd.Context(), domain.RunRequest{
				Directory:       dir,
				Mode:            mode,
				Execute:         f.execute,
				CaseStyle:       cfg.CaseStyle,
				Categories:      cfg.Categories,
				RenameInFolders: f.renameInFolders,
			}, NewReporter(cmd.OutOrStdout(), f.noColor))
			if err != nil {
				return err
			}
			if failed := report.MoveFailures(); failed > 0 {
				return fmt.Errorf("%d of %d moves failed", failed, len(report.Moves))
			}
			return nil
		},
	}

	f.register(cmd, "llava:latest", 150)
	flags := cmd.Flags()
	flags.BoolVar(&f.execute, "execute", false, "actually rename or move files (default is a dry run)")
	flags.StringVar(&f.caseStyle, "case", "", "filename case style: "+strings.Join(caseStyleNames(), ", ")+" (default snake)")
	flags.BoolVar(&f.organize, "organize", false, "organize files into category folders instead of renaming")
	flags.BoolVar(&f.renameInFolders, "rename-in-folders", false, "also rename files when organizing (requires --organize)")
	flags.StringSliceVar(&f.categories, "categories", nil, "custom categories for organizing")
	flags.IntVar(&f.maxNameLength, "max-name-length", 0, "maximum length of a suggested filename stem (default 100)")
	flags.BoolVar(&f.noColor, "no-color", false, "disable colored output")
	return cmd
}

func caseStyleNames() []string {
	names := make([]string, 0, len(naming.Styles))
	for _, style := range naming.Styles {
		names = append(names, string(style))
	}
	return names
}
