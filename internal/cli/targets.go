package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"apcmake/internal/cmake"
	"apcmake/internal/cmfind"
	"apcmake/internal/textutil"
)

// NewTargetsCmd returns the command listing CMakeLists files and the
// executable targets the patcher would consider.
func NewTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets [dir]",
		Short: "List CMakeLists.txt files with their projects and executables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, args []string) error {
			root := argDir(args)
			files, err := cmfind.ListFiles(root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return &cmfind.NotFoundError{Dir: root}
			}

			w := cc.OutOrStdout()
			for _, rel := range files {
				raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
				if err != nil {
					return err
				}
				text := string(textutil.NormalizeUTF8LF(raw))

				fmt.Fprintln(w, rel)
				if name, ok := cmake.ProjectName(text); ok {
					fmt.Fprintf(w, "  project: %s\n", name)
				}
				for _, exe := range cmake.DiscoverExecutables(text) {
					fmt.Fprintf(w, "  executable: %s\n", exe)
				}
			}
			return nil
		},
		SilenceUsage: true,
	}
}
