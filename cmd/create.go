package cmd

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/minefetch/minefetch/internals/instances"
	"github.com/minefetch/minefetch/internals/mojang"
	"github.com/minefetch/minefetch/internals/progress"
)

var createRAM int

var createCmd = &cobra.Command{
	Use:   "create <version> [name]",
	Short: "Create and download a new minecraft instance",
	Long: `Resolves the given version (fuzzy names like "Beta 1.7.3" work),
downloads the game files, assets, libraries and a matching java
runtime, and leaves a ready-to-launch instance behind.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		version := args[0]
		name := version
		if len(args) == 2 {
			name = args[1]
		}

		ctx := cmd.Context()

		service := mojang.New(httpClient)
		entry, err := service.Resolve(ctx, version)
		if err != nil {
			logger.Fail(err.Error())
		}
		if entry.ID != version {
			logger.Info("Resolved " + version + " to " + entry.ID)
		}

		instance := instances.NewInstance(globalDir, name, httpClient)
		instance.Config = instances.DefaultConfig()
		if createRAM > 0 {
			instance.Config.RamMB = createRAM
		}

		logger.Headline("Creating instance " + name + " (" + entry.ID + ")")

		jarCh := make(chan progress.Report, 16)
		assetCh := make(chan progress.Report, 256)
		libCh := make(chan progress.Report, 256)
		javaCh := make(chan progress.Report, 256)

		s := newMaybeSpinner(true)
		s.Start()
		wg := watchProgress(s, map[string]<-chan progress.Report{
			"assets":    assetCh,
			"libraries": libCh,
			"java":      javaCh,
			"jar":       jarCh,
		})

		err = instance.Create(ctx, entry.ID, &instances.CreateProgress{
			Jar:       jarCh,
			Assets:    assetCh,
			Libraries: libCh,
			Java:      javaCh,
		})
		close(jarCh)
		close(assetCh)
		close(libCh)
		close(javaCh)
		wg.Wait()
		s.Stop()

		if err != nil {
			logger.Fail(err.Error())
		}

		if details, err := instance.Details(); err == nil && details.Downloads.Client.Size > 0 {
			logger.Log("game jar: " + humanize.Bytes(uint64(details.Downloads.Client.Size)))
		}
		logger.Info("Instance ready at " + instance.Dir())
		logger.Info(fmt.Sprintf("Launch it with: minefetch launch %q", name))
	},
}

func init() {
	createCmd.Flags().IntVar(&createRAM, "ram", 0, "java heap size in MiB")
	rootCmd.AddCommand(createCmd)
}
