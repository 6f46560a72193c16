// Package app implements the interactive terminal screens of the fund
// client: login, register, dashboard, funds, deposit, portfolio and profile.
// Screens issue ledger calls, render results, and validate input locally
// before anything reaches the network; session state is only ever written
// through the session manager.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/app/mocks"
	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/session"
)

// LedgerAPI is an alias to the interface defined in the mocks package.
// The interface is defined there to avoid import cycles.
type LedgerAPI = mocks.LedgerAPI

// Compile-time check that the real client satisfies the interface.
var _ LedgerAPI = (*api.Client)(nil)

type screen string

const (
	screenLogin     screen = "login"
	screenRegister  screen = "register"
	screenDashboard screen = "dashboard"
	screenFunds     screen = "funds"
	screenDeposit   screen = "deposit"
	screenPortfolio screen = "portfolio"
	screenProfile   screen = "profile"
	screenQuit      screen = "quit"
)

// redirectDelay is how long the deposit screen lingers on its success
// message before navigating back to the dashboard.
const redirectDelay = 3 * time.Second

// App drives the screen loop. One screen is active at a time; navigation is
// by command, and a forced session teardown always lands on the login screen.
type App struct {
	sessions *session.Manager
	ledger   LedgerAPI
	in       *bufio.Scanner
	out      io.Writer

	chartDir string
	sleep    func(time.Duration)

	// forceLogin is set by the session-expired observer, which can fire from
	// any in-flight request; the loop consumes it at the next iteration.
	forceLogin atomic.Bool
}

// New creates the app and subscribes it to session teardown events.
func New(sessions *session.Manager, ledger LedgerAPI, in io.Reader, out io.Writer, chartDir string) *App {
	a := &App{
		sessions: sessions,
		ledger:   ledger,
		in:       bufio.NewScanner(in),
		out:      out,
		chartDir: chartDir,
		sleep:    time.Sleep,
	}
	sessions.NotifyExpired(func() { a.forceLogin.Store(true) })
	return a
}

// Run executes the screen loop until the user quits, input ends, or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) {
	current := screenLogin
	if a.sessions.IsAuthenticated() {
		current = screenDashboard
	}

	for current != screenQuit && ctx.Err() == nil {
		if a.forceLogin.Swap(false) && current != screenLogin {
			a.printf("\n⚠️  Tu sesión ha expirado. Inicia sesión de nuevo.\n")
			current = screenLogin
		}
		if current != screenLogin && current != screenRegister && !a.sessions.IsAuthenticated() {
			current = screenLogin
		}

		switch current {
		case screenLogin:
			current = a.loginScreen(ctx)
		case screenRegister:
			current = a.registerScreen(ctx)
		case screenDashboard:
			current = a.dashboardScreen(ctx)
		case screenFunds:
			current = a.fundsScreen(ctx)
		case screenDeposit:
			current = a.depositScreen(ctx)
		case screenPortfolio:
			current = a.portfolioScreen(ctx)
		case screenProfile:
			current = a.profileScreen(ctx)
		default:
			logger.Log.Error().Str("screen", string(current)).Msg("Unknown screen")
			current = screenDashboard
		}
	}

	a.printf("\n¡Hasta pronto! 👋\n")
}

// prompt prints a label and reads one trimmed input line. The second return
// is false when input is exhausted, which quits the loop.
func (a *App) prompt(label string) (string, bool) {
	a.printf("%s", label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// confirm asks a yes/no question; only an explicit "s"/"si" confirms.
func (a *App) confirm(label string) bool {
	answer, ok := a.prompt(label + " (s/n): ")
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí":
		return true
	default:
		return false
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// navPrompt renders the shared navigation bar and maps the answer to a
// screen. Unknown commands stay on the current screen.
func (a *App) navPrompt(current screen) screen {
	answer, ok := a.prompt("\n[d]ashboard [f]ondos [i]depositar [p]ortafolio [c]uenta [x]cerrar sesión [q]salir > ")
	if !ok {
		return screenQuit
	}
	switch strings.ToLower(answer) {
	case "d", "dashboard":
		return screenDashboard
	case "f", "fondos":
		return screenFunds
	case "i", "depositar":
		return screenDeposit
	case "p", "portafolio":
		return screenPortfolio
	case "c", "cuenta", "perfil":
		return screenProfile
	case "x", "salir", "logout":
		a.sessions.Logout()
		a.printf("Sesión cerrada.\n")
		return screenLogin
	case "q", "quit":
		return screenQuit
	default:
		return current
	}
}
