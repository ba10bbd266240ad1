package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "amuseing",
	Short: "A local MP3 player with a realtime audio playback engine",
	Long: `amuseing - a local music player built around a lock-free producer/
consumer audio engine: a decoder goroutine feeds a realtime PortAudio
callback through a single-producer/single-consumer ring of stereo sample
frames, with dynamic sample-rate adaptation, a queue with three repeat
disciplines, and device-error recovery.

Commands:
  - play: Play a playlist saved in the configuration file
  - transform: Convert audio files to different sample rates and WAV format`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
