package cmd

import (
	"github.com/spf13/cobra"

	"github.com/minefetch/minefetch/internals/instances"
)

var launchUsername string

var launchCmd = &cobra.Command{
	Use:     "launch <name>",
	Short:   "Launch a minecraft instance",
	Aliases: []string{"run", "start", "play"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		instance, err := instances.Open(globalDir, args[0], httpClient)
		if err != nil {
			logger.Fail("Instance problem: " + err.Error())
		}

		logger.Headline("Launching " + args[0])
		proc, err := instance.Launch(cmd.Context(), instances.LaunchOptions{
			Username: launchUsername,
		})
		if err != nil {
			logger.Fail(err.Error())
		}
		if err := proc.Wait(); err != nil {
			logger.Fail("Game exited with an error: " + err.Error())
		}
	},
}

func init() {
	launchCmd.Flags().StringVarP(&launchUsername, "username", "u", "Player", "in-game player name")
	rootCmd.AddCommand(launchCmd)
}
