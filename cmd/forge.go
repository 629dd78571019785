package cmd

import (
	"github.com/spf13/cobra"

	"github.com/minefetch/minefetch/internals/forge"
	"github.com/minefetch/minefetch/internals/instances"
	"github.com/minefetch/minefetch/internals/progress"
)

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "Manage the forge mod loader of an instance",
}

var forgeInstallCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install forge into an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		instance, err := instances.Open(globalDir, args[0], httpClient)
		if err != nil {
			logger.Fail("Instance problem: " + err.Error())
		}

		logger.Headline("Installing forge into " + args[0])
		reports := make(chan progress.Report, 256)
		s := newMaybeSpinner(true)
		s.Start()
		wg := watchProgress(s, map[string]<-chan progress.Report{"forge": reports})

		installer := forge.NewInstaller(instance, httpClient)
		installer.Reports = reports
		err = installer.Install(cmd.Context())
		close(reports)
		wg.Wait()
		s.Stop()

		if err != nil {
			logger.Fail(err.Error())
		}
		logger.Info("Forge installed")
	},
}

var forgeUninstallCmd = &cobra.Command{
	Use:   "uninstall <name>",
	Short: "Remove forge from an instance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		instance, err := instances.Open(globalDir, args[0], httpClient)
		if err != nil {
			logger.Fail("Instance problem: " + err.Error())
		}
		if err := forge.Uninstall(instance); err != nil {
			logger.Fail(err.Error())
		}
		logger.Info("Forge removed, instance is vanilla again")
	},
}

func init() {
	forgeCmd.AddCommand(forgeInstallCmd)
	forgeCmd.AddCommand(forgeUninstallCmd)
	rootCmd.AddCommand(forgeCmd)
}
