package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/shopcore/internal/client/client"
	"github.com/dmitrijs2005/shopcore/internal/client/config"
	"github.com/dmitrijs2005/shopcore/internal/client/models"
	"github.com/dmitrijs2005/shopcore/internal/client/services"
	"github.com/dmitrijs2005/shopcore/internal/client/storage"
	"github.com/dmitrijs2005/shopcore/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the persistence stack, the auth orchestrator, and the product
// list controller behind the REPL.
type App struct {
	config   *config.Config
	repos    *storage.Repositories
	provider client.Provider
	auth     services.AuthService
	products *services.ProductService
	log      logging.Logger
	reader   *bufio.Reader

	user *models.UserRecord
}

// NewApp opens the local database and constructs the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := storage.InitDatabase(ctx, c.DatabaseDSN, log)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	provider := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)

	return &App{
		config:   c,
		repos:    repos,
		provider: provider,
		auth:     services.NewAuthService(repos.Directory, repos.Session, log),
		products: services.NewProductService(provider, c.PageLimit, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session, greets the user, and hands control to
// the REPL until EOF or an exit command.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if s := a.auth.CheckSession(ctx); s.SignedIn {
		a.user = s.User
		fmt.Printf("Welcome back, %s!\n", displayName(s.User))
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases the provider and the database handle.
func (a *App) Close() {
	if err := a.provider.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close provider", "error", err)
	}
	if err := a.repos.Close(); err != nil {
		a.log.Error(context.Background(), "failed to close database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Email)
}

func displayName(u *models.UserRecord) string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
