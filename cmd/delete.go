package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minefetch/minefetch/internals/instances"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Delete an instance and all its files",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		instance, err := instances.Open(globalDir, args[0], httpClient)
		if err != nil {
			logger.Fail("Instance problem: " + err.Error())
		}

		if !deleteYes {
			fmt.Printf("Really delete %s? (%s) [y/N] ", args[0], instance.Dir())
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.TrimSpace(strings.ToLower(answer)); a != "y" && a != "yes" {
				logger.Info("Aborted")
				return
			}
		}

		if err := instance.Delete(); err != nil {
			logger.Fail(err.Error())
		}
		logger.Info("Deleted " + args[0])
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(deleteCmd)
}
