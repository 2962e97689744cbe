package cmd

import (
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/lioncurt/shopfront-cli/internal/adapters/api"
	"github.com/lioncurt/shopfront-cli/internal/adapters/identity"
	tomlstore "github.com/lioncurt/shopfront-cli/internal/adapters/sessionstore/toml"
	"github.com/lioncurt/shopfront-cli/internal/application"
	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

type app struct {
	session *application.SessionManager
	catalog *application.CatalogService
	cart    *application.CartService
	users   *application.UserDirectoryService
	google  *identity.GoogleSignIn
	stock   *stockNotifier
	log     zerolog.Logger
}

func wireApp() (*app, error) {
	logger := newLogger()

	store, err := tomlstore.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	client := &api.Client{
		BaseURL:    envOrDefault("SF_API_URL", "http://localhost:5000/api"),
		HTTPClient: http.DefaultClient,
	}

	authAPI := &api.AuthAPI{Client: client}
	session := application.NewSessionManager(authAPI, store, ports.SystemClock{}, logger)
	client.Tokens = session

	productAPI := &api.ProductAPI{Client: client}
	catalog := application.NewCatalogService(productAPI, logger)

	notifier := &stockNotifier{next: catalog}
	cart := application.NewCartService(&api.CartAPI{Client: client}, productAPI, &api.PaymentAPI{Client: client}, notifier, logger)

	users := application.NewUserDirectoryService(&api.UserAPI{Client: client}, logger)

	verifier := identity.NewGoogleVerifier(os.Getenv("SF_GOOGLE_CLIENT_ID"))
	google := identity.NewGoogleSignIn(authAPI, verifier, logger)

	return &app{
		session: session,
		catalog: catalog,
		cart:    cart,
		users:   users,
		google:  google,
		stock:   notifier,
		log:     logger,
	}, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if raw := os.Getenv("SF_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// stockNotifier forwards stock updates to the catalog cache and remembers
// the most recent one so cart commands can show what changed.
type stockNotifier struct {
	next ports.StockCache

	mu   sync.Mutex
	last *domain.StockUpdate
}

func (n *stockNotifier) ApplyStockUpdate(update domain.StockUpdate) {
	n.mu.Lock()
	copied := update
	n.last = &copied
	n.mu.Unlock()
	n.next.ApplyStockUpdate(update)
}

// TakeLast returns the last stock update and clears it.
func (n *stockNotifier) TakeLast() (domain.StockUpdate, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return domain.StockUpdate{}, false
	}
	update := *n.last
	n.last = nil
	return update, true
}
