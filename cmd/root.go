package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/minefetch/minefetch/internals/cmdlog"
	"github.com/minefetch/minefetch/internals/instances"
	"github.com/minefetch/minefetch/internals/ownhttp"
)

// Version is set by the build via ldflags
var Version = "dev"

var logger *cmdlog.Logger = cmdlog.New()

var (
	cfgFile       string
	globalDir     string
	disableColors bool
	httpClient    *http.Client = ownhttp.New()
)

var rootCmd = &cobra.Command{
	Version: Version,
	Use:     "minefetch",
	Short:   "Minecraft instances without the clicking",
	Long:    "Create, install and launch Minecraft instances from your terminal",

	Example: `
  minefetch create 1.20.1 my-instance
  minefetch forge install my-instance
  minefetch launch my-instance`,
}

var completionCmd = &cobra.Command{
	Use:   "completion",
	Args:  cobra.MaximumNArgs(1),
	Short: "Output shell completion code for bash",
	Long: `To load completion run

. <(minefetch completion)

You can add that line to your ~/.bashrc or ~/.profile to
persist completion in your shell.
`,
	Run: func(cmd *cobra.Command, args []string) {
		rootCmd.GenBashCompletion(os.Stdout)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	dir, err := instances.DefaultGlobalDir()
	if err != nil {
		panic(err)
	}
	globalDir = dir

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $globalDir/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().StringVar(&globalDir, "global-dir", globalDir, "launcher data directory")
	rootCmd.AddCommand(completionCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(globalDir)
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("minefetch")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if dir := viper.GetString("globalDir"); dir != "" && !rootCmd.PersistentFlags().Changed("global-dir") {
			globalDir = dir
		}
	}

	// a configured limit throttles every request this process makes
	if rps := viper.GetFloat64("throttleRps"); rps > 0 {
		burst := viper.GetInt("throttleBurst")
		if burst < 1 {
			burst = 1
		}
		httpClient = ownhttp.NewThrottled(rate.Limit(rps), burst)
	}
}
