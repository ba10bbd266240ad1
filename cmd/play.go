package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/drgolem/go-portaudio/portaudio"
	"github.com/spf13/cobra"

	"github.com/ontley/amuseing/internal/config"
	"github.com/ontley/amuseing/pkg/engine"
	"github.com/ontley/amuseing/pkg/queue"
	"github.com/ontley/amuseing/pkg/song"
)

var (
	playDeviceIdx       int
	playFramesPerBuffer int
	playPlaylist        string
	playVerbose         bool
)

var playCmd = &cobra.Command{
	Use:   "play [playlist_name]",
	Short: "Play a saved playlist through the audio engine",
	Long: `Play runs the realtime decoder/playback engine against a playlist loaded
from the configuration file (~/.config/amuseing/config.toml or its
platform equivalent). With no playlist name given, it plays the first
saved playlist.

Examples:
  # Play the first configured playlist
  amuseing play

  # Play a specific saved playlist by name
  amuseing play "Music"

  # Use a specific output device and verbose logging
  amuseing play -d 0 -v`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntVarP(&playDeviceIdx, "device", "d", 1, "Audio output device index")
	playCmd.Flags().IntVarP(&playFramesPerBuffer, "paframes", "p", 1024, "PortAudio frames per buffer")
	playCmd.Flags().StringVarP(&playPlaylist, "playlist", "l", "", "Playlist name to play (defaults to the first saved playlist)")
	playCmd.Flags().BoolVarP(&playVerbose, "verbose", "v", false, "Verbose output (debug logging)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logLevel := slog.LevelInfo
	if playVerbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if len(args) == 1 {
		playPlaylist = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	songs, err := selectPlaylistSongs(cfg, playPlaylist)
	if err != nil {
		slog.Error("failed to resolve playlist", "error", err)
		os.Exit(1)
	}
	if len(songs) == 0 {
		slog.Error("playlist has no playable songs")
		os.Exit(1)
	}

	slog.Info("initializing PortAudio")
	if err := portaudio.Initialize(); err != nil {
		slog.Error("failed to initialize PortAudio", "error", err)
		os.Exit(1)
	}
	defer portaudio.Terminate()

	q := queue.New[song.Song](queue.All)
	q.Extend(songs)

	p := engine.WithQueue(q, cfg.Volume, playDeviceIdx, playFramesPerBuffer)

	updates, err := p.Run(cfg.BufferSize)
	if err != nil {
		slog.Error("failed to start playback engine", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("signal received, stopping playback")
		p.Quit()
	}()

	for update := range updates {
		switch u := update.(type) {
		case engine.UpdateSongChange:
			if u.Song == nil {
				slog.Info("playlist exhausted")
				continue
			}
			slog.Info("now playing", "index", u.Index, "title", u.Song.Title)
		case engine.UpdateStateChange:
			slog.Debug("playback state changed", "state", u.State.String())
		case engine.UpdateDeviceDisconnect:
			slog.Warn("audio device reconnected after trouble")
		}
	}

	slog.Info("playback finished")
}

func selectPlaylistSongs(cfg *config.Config, name string) ([]song.Song, error) {
	playlists := cfg.SongPlaylists()
	if len(playlists) == 0 {
		return nil, nil
	}

	chosen := playlists[0]
	if name != "" {
		found := false
		for _, pl := range playlists {
			if pl.Name == name {
				chosen = pl
				found = true
				break
			}
		}
		if !found {
			return nil, &playlistNotFoundError{Name: name}
		}
	}

	return chosen.Songs(), nil
}

type playlistNotFoundError struct {
	Name string
}

func (e *playlistNotFoundError) Error() string {
	return "no saved playlist named " + e.Name
}
