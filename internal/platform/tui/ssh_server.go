package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-sand/internal/metrics"
	"github.com/vovakirdan/tui-sand/internal/sandbox"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sand/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server that gives every connection its own sandbox.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	launcher Launcher
	metrics  *metrics.Metrics
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server. metrics may be nil.
func NewSSHServer(cfg SSHServerConfig, launcher Launcher, m *metrics.Metrics, logger *log.Logger) (*SSHServer, error) {
	srv := &SSHServer{
		config:   cfg,
		launcher: launcher,
		metrics:  m,
		logger:   logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sand", "host_key")
	}

	// Ensure host key directory exists
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	launcher := s.launcher
	launcher.Logger = s.logger.With("user", sshSession.User())
	var tracker *metrics.Tracker
	if s.metrics != nil {
		tracker = s.metrics.Track()
		launcher.Observer = tracker
		go func() {
			<-sshSession.Context().Done()
			tracker.Close()
		}()
	}

	painter := NewPainter(bubbletea.MakeRenderer(sshSession))
	model := NewSessionModel(launcher, painter, pty.Window.Width, pty.Window.Height)
	model.tracker = tracker

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type screenState int

const (
	stateMenu screenState = iota
	stateScenes
	stateSandbox
)

// SessionModel manages the full flow of one connection:
// menu -> sandbox -> menu, with the saved scene browser one Tab away.
type SessionModel struct {
	launcher Launcher
	painter  *Painter
	width    int
	height   int
	state    screenState
	menu     MenuModel
	scenes   ScenesModel
	sandbox  *Model
	notice   string           // Last launch error, shown under the menu
	tracker  *metrics.Tracker // nil when metrics are disabled
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(launcher Launcher, painter *Painter, width, height int) SessionModel {
	return SessionModel{
		launcher: launcher,
		painter:  painter,
		width:    width,
		height:   height,
		menu:     NewMenuModel(width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.state {
	case stateSandbox:
		return m.updateSandbox(msg)
	case stateScenes:
		return m.updateScenes(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScenes() {
		m.state = stateScenes
		m.scenes = NewScenesModel(m.launcher.Store, m.width, m.height)
		return m, m.scenes.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		session, err := m.launcher.NewSession(selected.ID, m.width, m.height)
		if err != nil {
			return m.backToMenu(err), nil
		}
		return m.enterSandbox(session)
	}

	return m, cmd
}

// updateScenes handles updates when browsing saved scenes.
func (m SessionModel) updateScenes(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScenes, cmd := m.scenes.Update(msg)
	if scenesModel, ok := newScenes.(ScenesModel); ok {
		m.scenes = scenesModel
	}

	switch {
	case m.scenes.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scenes.IsGoingBack():
		return m.backToMenu(nil), nil
	case m.scenes.Opened() != "":
		session, err := m.launcher.OpenScene(m.scenes.Opened(), m.width, m.height)
		if err != nil {
			return m.backToMenu(err), nil
		}
		return m.enterSandbox(session)
	}

	return m, cmd
}

// updateSandbox handles updates when a sandbox is running.
func (m SessionModel) updateSandbox(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.sandbox.Update(msg)
	if sandboxModel, ok := newModel.(Model); ok {
		m.sandbox = &sandboxModel
	}

	if m.sandbox.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.sandbox.BackToMenu() {
		return m.backToMenu(nil), nil
	}

	return m, cmd
}

// enterSandbox switches the flow to a running sandbox.
func (m SessionModel) enterSandbox(session *sandbox.Session) (tea.Model, tea.Cmd) {
	rc := m.launcher.Runtime(m.width, m.height)
	model := NewModel(session, rc, m.painter)
	m.sandbox = &model
	m.state = stateSandbox
	m.notice = ""
	return m, m.sandbox.Init()
}

// backToMenu resets the flow to a fresh menu, optionally reporting err.
func (m SessionModel) backToMenu(err error) SessionModel {
	if m.state == stateSandbox && m.tracker != nil {
		m.tracker.Detach()
	}
	m.state = stateMenu
	m.sandbox = nil
	m.menu = NewMenuModel(m.width, m.height)
	m.notice = ""
	if err != nil && m.launcher.Logger != nil {
		m.launcher.Logger.Warn("could not start sandbox", "err", err)
	}
	if err != nil {
		m.notice = "Could not start sandbox: " + err.Error()
	}
	return m
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateSandbox:
		return m.sandbox.View()
	case stateScenes:
		return m.scenes.View()
	}

	if m.notice != "" {
		return m.menu.View() + "\n" + centerText(menuMutedStyle.Render(m.notice), m.width)
	}
	return m.menu.View()
}
