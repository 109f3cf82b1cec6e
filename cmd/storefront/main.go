// Package main is the storefront shell: the headless counterpart of the
// browser client. It loads configuration (env + YAML route table), builds the
// storage tiers (JSON file or redis durable tier, in-memory tab tier), the
// notifier chain (console printer + log notifier), the HTTP API client, the
// session and cart stores and the navigator, then drives the whole thing from
// an interactive command loop. A stale-build reload signal tears the app down
// and rebuilds it from persisted state, the way a browser reload would.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"mystorefront/adapters/httpapi"
	"mystorefront/adapters/notify"
	"mystorefront/adapters/storage"
	"mystorefront/domain"
	"mystorefront/helpers"
	"mystorefront/interfaces"
	"mystorefront/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
)

// consoleNotifier prints notifications to stdout — the shell's stand-in for
// the transient on-screen message surface.
type consoleNotifier struct{}

func (consoleNotifier) Success(message string) { fmt.Println("[ok] " + message) }
func (consoleNotifier) Warning(message string) { fmt.Println("[warn] " + message) }
func (consoleNotifier) Error(message string)   { fmt.Println("[error] " + message) }

// pageLoader is the shell's component loader. Pages are compiled in, so
// loading always succeeds; the hook exists so the navigator's stale-build
// recovery path stays wired end to end.
type pageLoader struct {
	logger log.Logger
}

func (l *pageLoader) Load(_ context.Context, route domain.Route) error {
	level.Debug(l.logger).Log("msg", "page loaded", "path", route.Path, "name", route.Name)
	return nil
}

// reloadSignal implements interfaces.Reloader by signalling the main loop to
// rebuild the app from persisted state.
type reloadSignal chan struct{}

func (r reloadSignal) Reload() {
	select {
	case r <- struct{}{}:
	default:
	}
}

// app is the assembled storefront client.
type app struct {
	session   *service.SessionStore
	cart      *service.CartStore
	nav       *service.Navigator
	requester interfaces.Requester

	// products caches the last fetched catalog so add commands can reference
	// products by id.
	products map[int64]domain.Product
}

// buildApp wires the full client: storage tiers, notifier chain, API client,
// stores (session rehydrated, cart rehydrated) and navigator.
func buildApp(ctx context.Context, cfg *Config, logger log.Logger, reloader interfaces.Reloader) (*app, error) {
	var durable interfaces.Storage
	if cfg.RedisAddr != "" {
		client, err := storage.NewRedisUniversalClient(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		durable = storage.NewRedis(client, "storefront")
	} else {
		file, err := storage.NewFile(cfg.StoragePath, logger)
		if err != nil {
			return nil, err
		}
		durable = file
	}
	tab := storage.NewMemory()

	notifier := helpers.NewNotifierChain(consoleNotifier{}, notify.NewLogNotifier(logger))
	requester := httpapi.NewClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, notifier, logger)

	session := service.NewSessionStore(durable, tab, requester, notifier, logger)
	session.Initialize(ctx)
	cart := service.NewCartStore(ctx, durable, notifier, logger)

	matcher, err := service.NewRouteMatcher(cfg.Routes)
	if err != nil {
		return nil, err
	}
	nav := service.NewNavigator(matcher, durable, notifier, &pageLoader{logger: logger}, reloader, logger, cfg.Routes.DefaultTitle)

	return &app{
		session:   session,
		cart:      cart,
		nav:       nav,
		requester: requester,
		products:  map[int64]domain.Product{},
	}, nil
}

func main() {
	logger := log.NewLogfmtLogger(os.Stderr)
	if err := godotenv.Load(); err != nil {
		level.Info(logger).Log("msg", "no .env file found; relying on existing environment")
	}
	cfg, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	reload := make(reloadSignal, 1)
	shop, err := buildApp(ctx, cfg, logger, reload)
	if err != nil {
		level.Error(logger).Log("msg", "failed to build storefront", "err", err)
		os.Exit(1)
	}
	if _, err := shop.nav.Navigate(ctx, "/"); err != nil {
		level.Error(logger).Log("msg", "initial navigation failed", "err", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		select {
		case <-reload:
			level.Info(logger).Log("msg", "reloading storefront from persisted state")
			shop, err = buildApp(ctx, cfg, logger, reload)
			if err != nil {
				level.Error(logger).Log("msg", "reload failed", "err", err)
				os.Exit(1)
			}
			if _, err := shop.nav.Navigate(ctx, "/"); err != nil {
				level.Error(logger).Log("msg", "initial navigation failed", "err", err)
			}
		default:
		}

		fmt.Printf("%s> ", shop.nav.Title())
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			break
		}
		shop.dispatch(ctx, args)
	}
}

// dispatch runs one shell command against the client.
func (a *app) dispatch(ctx context.Context, args []string) {
	switch args[0] {
	case "goto":
		if len(args) < 2 {
			fmt.Println("usage: goto <path>")
			return
		}
		if res, err := a.nav.Navigate(ctx, args[1]); err == nil {
			a.printNav(res)
		}
	case "back":
		if res, err := a.nav.Back(ctx); err == nil {
			a.printNav(res)
		} else {
			fmt.Println(service.ErrorMessage(err, "cannot go back"))
		}
	case "scroll":
		top, err := strconv.Atoi(argAt(args, 1))
		if err != nil {
			fmt.Println("usage: scroll <top>")
			return
		}
		a.nav.SaveScroll(domain.ScrollPosition{Top: top})
	case "login":
		if len(args) < 3 {
			fmt.Println("usage: login <phone> <password> [remember]")
			return
		}
		remember := len(args) > 3 && args[3] == "remember"
		a.session.Login(ctx, args[1], args[2], remember)
	case "logout":
		a.session.Logout(ctx)
		fmt.Println("logged out")
	case "whoami":
		if user, ok := a.session.CurrentUser(); ok {
			fmt.Printf("%s (%s), remembered=%v\n", user.Phone, user.Role, a.session.RememberMe())
		} else {
			fmt.Println("not logged in")
		}
	case "products":
		a.fetchProducts(ctx)
	case "add":
		id, err := strconv.ParseInt(argAt(args, 1), 10, 64)
		if err != nil {
			fmt.Println("usage: add <product-id> [qty]")
			return
		}
		qty := 1
		if q, err := strconv.Atoi(argAt(args, 2)); err == nil {
			qty = q
		}
		product, ok := a.products[id]
		if !ok {
			fmt.Println("unknown product; run products first")
			return
		}
		a.cart.AddToCart(ctx, product, qty)
	case "remove":
		id, err := strconv.ParseInt(argAt(args, 1), 10, 64)
		if err != nil {
			fmt.Println("usage: remove <product-id>")
			return
		}
		a.cart.RemoveFromCart(ctx, id)
	case "inc", "dec":
		id, err := strconv.ParseInt(argAt(args, 1), 10, 64)
		if err != nil {
			fmt.Printf("usage: %s <product-id>\n", args[0])
			return
		}
		delta := 1
		if args[0] == "dec" {
			delta = -1
		}
		a.cart.UpdateQuantity(ctx, id, delta)
	case "cart":
		for _, item := range a.cart.Items() {
			fmt.Printf("%d x %s @ %.2f\n", item.Quantity, item.Name, item.Price)
		}
		fmt.Printf("total: %.2f (panel visible: %v)\n", a.cart.TotalAmount(), a.cart.Visible())
	case "toggle":
		a.cart.ToggleCart(ctx)
	case "close":
		a.cart.CloseCart(ctx)
	case "clear":
		a.cart.ClearCart(ctx)
	default:
		fmt.Println("commands: goto back scroll login logout whoami products add remove inc dec cart toggle close clear quit")
	}
}

// fetchProducts loads the catalog from the backend and caches it by id.
func (a *app) fetchProducts(ctx context.Context) {
	resp, err := a.requester.Request(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return // the client already notified
	}
	var products []domain.Product
	if err := json.Unmarshal(resp.Data, &products); err != nil {
		fmt.Println("undecodable product list")
		return
	}
	for _, p := range products {
		a.products[p.ID] = p
		fmt.Printf("#%d %s @ %.2f (stock %d)\n", p.ID, p.Name, p.Price, p.Stock)
	}
}

func (a *app) printNav(res service.NavResult) {
	if res.RedirectedFrom != "" {
		fmt.Printf("redirected from %s\n", res.RedirectedFrom)
	}
	fmt.Printf("at %s (%s), scroll top %d\n", res.Route.Path, res.Title, res.Scroll.Top)
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
