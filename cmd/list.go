package cmd

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/minefetch/minefetch/internals/instances"
	"github.com/minefetch/minefetch/internals/mojang"
)

var listStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder(), false, false, false, true).
	PaddingLeft(1)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List installed instances",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		names, err := instances.List(globalDir)
		if err != nil {
			logger.Fail(err.Error())
		}
		if len(names) == 0 {
			logger.Info("No instances yet. Create one with \"minefetch create <version>\"")
			return
		}

		latest := latestRelease(cmd)

		for _, name := range names {
			line := name
			if instance, err := instances.Open(globalDir, name, httpClient); err == nil {
				if details, err := instance.Details(); err == nil {
					line = fmt.Sprintf("%-24s %s  %s", name, details.ID, instance.Config.Loader)
					if outdated(details.ID, latest) {
						line += "  (newer release: " + latest + ")"
					}
				}
			}
			fmt.Println(listStyle.Render(line))
		}
	},
}

// latestRelease fetches the current release id, best effort
func latestRelease(cmd *cobra.Command) string {
	manifest, err := mojang.New(httpClient).Manifest(cmd.Context())
	if err != nil {
		return ""
	}
	return manifest.Latest.Release
}

// outdated compares two release ids. Non-semver ids (snapshots, old
// betas) never count as outdated.
func outdated(current string, latest string) bool {
	if current == "" || latest == "" {
		return false
	}
	cur, err := semver.NewVersion(current)
	if err != nil {
		return false
	}
	lat, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return cur.LessThan(lat)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
