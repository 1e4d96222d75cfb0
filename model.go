package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// watchModel is the Bubble Tea model for the interactive watch mode.
type watchModel struct {
	player Player

	song      Song
	lastError error

	width  int
	height int

	// Smooth position interpolation between data fetches
	lastPosition     time.Duration
	lastPositionTime time.Time

	// Text scrolling state
	scrollOffset int
	scrollPause  int
	scrollTick   int

	showHelp bool
}

// UI refresh tick for scroll animation and progress interpolation
type tickMsg time.Time

// Data fetch tick to poll the player
type fetchMsg time.Time

// Result of polling the player
type songMsg struct {
	song Song
	err  error
}

func newWatchModel(player Player) watchModel {
	return watchModel{player: player}
}

// Schedule next UI refresh tick
func tickCmd() tea.Cmd {
	cfg := config.Get()
	return tea.Tick(time.Duration(cfg.Timing.UIRefreshMs)*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Schedule next data fetch
func fetchCmd() tea.Cmd {
	cfg := config.Get()
	return tea.Tick(time.Duration(cfg.Timing.DataFetchMs)*time.Millisecond, func(t time.Time) tea.Msg {
		return fetchMsg(t)
	})
}

// Poll the player in the background
func (m watchModel) fetchSong() tea.Cmd {
	return func() tea.Msg {
		song, err := m.player.Now()
		return songMsg{song: song, err: err}
	}
}

// currentPosition interpolates the playback position between fetches.
func (m watchModel) currentPosition() time.Duration {
	if !m.song.Playing() {
		return m.lastPosition
	}
	pos := m.lastPosition + time.Since(m.lastPositionTime)
	if m.song.Length > 0 && pos > m.song.Length {
		pos = m.song.Length
	}
	return pos
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		fetchCmd(),
		m.fetchSong(),
		watchConfigCmd(),
	)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			if err := m.player.Control(CmdPlayPause); err != nil {
				m.lastError = err
			}
			// Refresh immediately so the status flips without waiting a tick
			return m, m.fetchSong()
		case "n":
			if err := m.player.Control(CmdNext); err != nil {
				m.lastError = err
			}
			return m, m.fetchSong()
		case "b":
			if err := m.player.Control(CmdPrevious); err != nil {
				m.lastError = err
			}
			return m, m.fetchSong()
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case configReloadMsg:
		// Values are re-read from the SafeConfig on every render; just keep
		// watching for further changes.
		return m, watchConfigCmd()

	case tickMsg:
		m.scrollTick++
		if m.scrollPause > 0 {
			m.scrollPause--
		} else if m.scrollTick%3 == 0 {
			m.scrollOffset++

			cfg := config.Get()
			maxLen := cfg.UI.MaxWidth - 4
			longest := len([]rune(m.song.Title))
			if l := len([]rune(m.song.ArtistLine())); l > longest {
				longest = l
			}
			if l := len([]rune(m.song.Album)); l > longest {
				longest = l
			}
			if longest > maxLen && m.scrollOffset >= longest+5 {
				m.scrollOffset = 0
				m.scrollPause = 30
			}
		}
		return m, tickCmd()

	case fetchMsg:
		return m, tea.Batch(fetchCmd(), m.fetchSong())

	case songMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		if msg.song.TrackID != m.song.TrackID {
			m.scrollOffset = 0
			m.scrollPause = 30
			m.scrollTick = 0
		}
		m.song = msg.song
		m.lastPosition = msg.song.Position
		m.lastPositionTime = time.Now()
		m.lastError = nil
		return m, nil
	}

	return m, nil
}

// runWatch starts the interactive view and blocks until it exits.
func runWatch(player Player) error {
	p := tea.NewProgram(newWatchModel(player), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
