package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"apcmake/internal/cmake"
	"apcmake/internal/cmfind"
	"apcmake/internal/config"
	"apcmake/internal/diff"
	"apcmake/internal/fileio"
	"apcmake/internal/notes"
	"apcmake/internal/splice"
	"apcmake/internal/textutil"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAborted reports that the user declined the already-patched prompt.
	ErrAborted = errors.New("aborted")
)

// recipe binds a patch function to its companion notes file.
type recipe struct {
	apply     func(splice.Document, config.Config) splice.PatchResult
	notesName string
	notes     func(notes.Options) []byte

	// wantMainTarget reports the linked main executable in the notes.
	wantMainTarget bool
}

// NewRootPatchCmd returns the command patching a root CMakeLists.txt.
func NewRootPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root [dir]",
		Short: "Patch the root CMakeLists.txt (dependencies, library, main link)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return runPatch(cc, argDir(args), recipe{
				apply:          cmake.Root,
				notesName:      notes.RootFileName,
				notes:          notes.GenerateRootNotes,
				wantMainTarget: true,
			})
		},
		SilenceUsage: true,
	}
	addPatchFlags(cmd)
	return cmd
}

// NewSrcPatchCmd returns the command patching a source-tree CMakeLists.txt.
func NewSrcPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "src [dir]",
		Short: "Patch the source-tree CMakeLists.txt (subdirectory, game links)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			return runPatch(cc, argDir(args), recipe{
				apply:     cmake.Src,
				notesName: notes.SrcFileName,
				notes:     notes.GenerateSrcNotes,
			})
		},
		SilenceUsage: true,
	}
	addPatchFlags(cmd)
	return cmd
}

func argDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func addPatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "YAML file overriding the built-in defaults")
	cmd.Flags().String("lib", "", "Override the integration library name")
	cmd.Flags().Int("window", 0, "Override the dependency scan window in bytes")
	cmd.Flags().BoolP("yes", "y", false, "Continue without prompting when the file looks already patched")
	cmd.Flags().Bool("show-diff", false, "Print a unified diff of the applied changes")
	if err := cmd.MarkFlagFilename("config", "yaml", "yml"); err != nil {
		panic(err)
	}
}

type patchOptions struct {
	configPath string
	lib        string
	window     int
	yes        bool
	showDiff   bool
}

func getPatchOptions(cc *cobra.Command) (patchOptions, error) {
	var (
		merr error
		opt  patchOptions
		err  error
	)

	flags := cc.Flags()
	opt.configPath, err = flags.GetString("config")
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	opt.lib, err = flags.GetString("lib")
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	opt.window, err = flags.GetInt("window")
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	opt.yes, err = flags.GetBool("yes")
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	opt.showDiff, err = flags.GetBool("show-diff")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return opt, fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
	}
	return opt, nil
}

func runPatch(cc *cobra.Command, dir string, rec recipe) error {
	opt, err := getPatchOptions(cc)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opt.configPath)
	if err != nil {
		return err
	}
	if opt.lib != "" {
		cfg.Library = opt.lib
	}
	if opt.window > 0 {
		cfg.WindowBytes = opt.window
	}

	path, err := cmfind.Locate(dir)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(textutil.NormalizeUTF8LF(raw))

	if strings.Contains(text, cmake.CompletionSignature(cfg)) {
		slog.Warn("file already contains the integration",
			"path", path, "signature", cmake.CompletionSignature(cfg))
		if !opt.yes {
			ok, err := confirm(cc)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s already patched", ErrAborted, path)
			}
		}
	}

	backup, created, err := fileio.EnsureBackup(path)
	if err != nil {
		return fmt.Errorf("backing up %s: %w", path, err)
	}
	if created {
		slog.Info("backup written", "path", backup)
	}

	res := rec.apply(splice.Document{Name: path, Text: text}, cfg)
	for _, p := range res.Applied {
		slog.Debug("inserted block", "offset", p.Offset, "reason", p.Reason)
	}
	for _, s := range res.Skipped {
		slog.Warn(s)
	}

	if len(res.Applied) == 0 {
		slog.Info("already applied; file unchanged", "path", path)
	} else {
		out := textutil.EnsureTrailingLF([]byte(res.Doc.Text))
		if err := fileio.WriteAtomic(path, out); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		slog.Info("patched", "path", path, "insertions", len(res.Applied))
	}

	if err := writeNotes(cc, path, rec, cfg, res, opt.showDiff); err != nil {
		return err
	}

	if len(res.Applied) > 0 {
		body, oversize := diff.Unified(path, path, []byte(text), []byte(res.Doc.Text), diff.Options{})
		if oversize {
			slog.Warn("diff omitted: inputs exceed size guardrail")
		}
		if opt.showDiff {
			fmt.Fprint(cc.OutOrStdout(), body)
		} else {
			slog.Debug("unified diff", "patch", body)
		}
	}

	return nil
}

// writeNotes renders the companion instruction file next to the patched
// CMakeLists. It is rewritten on every run so the skipped-step list stays
// current.
func writeNotes(cc *cobra.Command, path string, rec recipe, cfg config.Config, res splice.PatchResult, showDiff bool) error {
	nopt := notes.Options{Config: cfg, Skipped: res.Skipped}
	if rec.wantMainTarget {
		if mt, ok := cmake.FindMainTarget(res.Doc.Text, cfg.Executables); ok {
			nopt.MainTarget = mt.Name
		}
	}
	body := rec.notes(nopt)

	notesPath := filepath.Join(filepath.Dir(path), rec.notesName)
	_, statErr := os.Stat(notesPath)
	fresh := errors.Is(statErr, os.ErrNotExist)

	if err := fileio.WriteAtomic(notesPath, body); err != nil {
		return fmt.Errorf("writing %s: %w", notesPath, err)
	}
	slog.Info("companion notes written", "path", notesPath)

	if showDiff && fresh {
		added, _ := diff.Added(rec.notesName, body, diff.Options{})
		fmt.Fprint(cc.OutOrStdout(), added)
	}
	return nil
}

// confirm asks the already-patched question on an interactive stdin. A
// non-interactive stdin refuses outright; use --yes for unattended runs.
func confirm(cc *cobra.Command) (bool, error) {
	if f, ok := cc.InOrStdin().(*os.File); ok && !isatty.IsTerminal(f.Fd()) {
		return false, fmt.Errorf("%w: stdin is not a terminal, pass --yes to continue", ErrAborted)
	}
	fmt.Fprint(cc.OutOrStdout(), "Continue anyway? (y/N): ")
	line, err := bufio.NewReader(cc.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	ans := strings.ToLower(strings.TrimSpace(line))
	return ans == "y" || ans == "yes", nil
}
