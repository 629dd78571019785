package cmd

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minefetch/minefetch/internals/java"
	"github.com/minefetch/minefetch/internals/progress"
)

var javaCmd = &cobra.Command{
	Use:   "java <major>",
	Short: "Install a java runtime and print its binary path",
	Long: `Installs the requested java feature release (8, 16, 17, 21)
into the shared runtime store and prints the path of its java binary.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		major, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Fail("not a java feature release: " + args[0])
		}

		reports := make(chan progress.Report, 256)
		s := newMaybeSpinner(true)
		s.Start()
		wg := watchProgress(s, map[string]<-chan progress.Report{"java": reports})

		factory := java.NewFactory(filepath.Join(globalDir, "java_installs"), httpClient)
		factory.OnProgress = func(done int, total int) {
			progress.Send(reports, progress.Report{Done: done, Total: total})
		}
		runtime, err := factory.Version(cmd.Context(), major)
		close(reports)
		wg.Wait()
		s.Stop()

		if err != nil {
			logger.Fail(err.Error())
		}
		bin, err := runtime.Bin("java")
		if err != nil {
			logger.Fail(err.Error())
		}
		logger.Info(bin)
	},
}

func init() {
	rootCmd.AddCommand(javaCmd)
}
