package service

import (
	"context"
	"errors"
	"sync"

	"mystorefront/domain"
	"mystorefront/helpers"
	"mystorefront/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// warnLoginRequired is the single warning emitted when the guard redirects an
// unauthenticated navigation to the login page.
const warnLoginRequired = "please log in first"

// NavResult is a committed navigation: the resolved route, bound params, the
// document title that was set, the scroll position to apply (top for fresh
// navigations, the saved position for Back), and the path the guard
// redirected away from, when it did.
type NavResult struct {
	Route          domain.Route
	Params         domain.RouteParams
	Title          string
	Scroll         domain.ScrollPosition
	RedirectedFrom string
}

// historyEntry is one visited path plus the scroll position recorded for it
// via SaveScroll before the user navigated away.
type historyEntry struct {
	path   string
	scroll domain.ScrollPosition
}

// Navigator runs every navigation attempt: route matching, route-level
// redirects, document title, the auth guard (re-checking durable storage
// directly, not the session store's memory), component loading with
// stale-build recovery, and the history stack that backs scroll restoration.
// Single active route at a time.
type Navigator struct {
	matcher      interfaces.RouteMatcher
	durable      interfaces.Storage
	notifier     interfaces.Notifier
	loader       interfaces.ComponentLoader
	reloader     interfaces.Reloader
	logger       log.Logger
	defaultTitle string

	mu      sync.Mutex
	history []historyEntry
	title   string
}

// NewNavigator creates the navigator. Panics on any nil dependency; an empty
// defaultTitle is allowed (routes without titles then set an empty title).
//
// Parameters: matcher — route table matcher; durable — the durable storage
// tier the guard reads the persisted user from; notifier — warning surface
// for guard redirects; loader — per-route component loader; reloader — full
// application restart for stale builds; logger — diagnostic log sink;
// defaultTitle — brand title used when the matched route has none.
//
// Returns: *Navigator.
//
// Called from cmd/storefront when building the app.
func NewNavigator(
	matcher interfaces.RouteMatcher,
	durable interfaces.Storage,
	notifier interfaces.Notifier,
	loader interfaces.ComponentLoader,
	reloader interfaces.Reloader,
	logger log.Logger,
	defaultTitle string,
) *Navigator {
	return &Navigator{
		matcher:      helpers.NilPanic(matcher, "service.navigator.go: matcher is required"),
		durable:      helpers.NilPanic(durable, "service.navigator.go: durable storage is required"),
		notifier:     helpers.NilPanic(notifier, "service.navigator.go: notifier is required"),
		loader:       helpers.NilPanic(loader, "service.navigator.go: loader is required"),
		reloader:     helpers.NilPanic(reloader, "service.navigator.go: reloader is required"),
		logger:       log.WithPrefix(helpers.NilPanic(logger, "service.navigator.go: logger is required"), "component", "Navigator"),
		defaultTitle: defaultTitle,
	}
}

// Navigate runs a fresh navigation to path: match, follow a route-level
// redirect, set the title, guard, load, commit. A guard redirect emits
// exactly one warning and lands on the login page with RedirectedFrom set to
// the refused path. A load failure aborts the transition: stale-build
// failures trigger a full reload via the Reloader, all other load errors are
// only logged; either way the error is returned and the previous route stays
// current.
//
// Parameters: ctx — passed to storage reads and the loader; path — requested
// path, e.g. "/cart".
//
// Returns: (NavResult, nil) when the transition committed; (NavResult{}, err)
// when the component load failed.
//
// Called from the storefront shell on every goto command.
func (n *Navigator) Navigate(ctx context.Context, path string) (NavResult, error) {
	return n.navigate(ctx, path, domain.ScrollPosition{}, true)
}

// Back returns to the previous history entry, restoring the scroll position
// saved for it. The guard still runs: logging out between visits turns a
// back navigation into a login redirect.
//
// Returns: (NavResult, nil) on success; (NavResult{}, err) when there is no
// previous entry (bad_parameter) or the load failed.
func (n *Navigator) Back(ctx context.Context) (NavResult, error) {
	n.mu.Lock()
	if len(n.history) < 2 {
		n.mu.Unlock()
		return NavResult{}, NewBadParameterError("no previous page in history", nil)
	}
	n.history = n.history[:len(n.history)-1]
	target := n.history[len(n.history)-1]
	n.mu.Unlock()
	return n.navigate(ctx, target.path, target.scroll, false)
}

// SaveScroll records the viewport position for the current history entry so
// a later Back restores it. No-op before the first committed navigation.
func (n *Navigator) SaveScroll(pos domain.ScrollPosition) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return
	}
	n.history[len(n.history)-1].scroll = pos
}

// Title returns the current document title.
func (n *Navigator) Title() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.title
}

// Current returns the path of the active route, or ("", false) before the
// first committed navigation.
func (n *Navigator) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.history) == 0 {
		return "", false
	}
	return n.history[len(n.history)-1].path, true
}

// navigate is the shared transition body. push=false replays an existing
// history entry (Back) instead of appending a new one; scroll is the
// position to hand back on success.
func (n *Navigator) navigate(ctx context.Context, path string, scroll domain.ScrollPosition, push bool) (NavResult, error) {
	route, params, matched := n.matcher.Match(path)
	if !matched {
		level.Info(n.logger).Log("msg", "no route matched, using not-found page", "path", path)
	}
	if route.Redirect != "" {
		// Route-level alias ("/" → "/home"); the table validator guarantees
		// the target exists and is itself redirect-free, so this recurses at
		// most once.
		return n.navigate(ctx, route.Redirect, scroll, push)
	}

	title := route.Title
	if title == "" {
		title = n.defaultTitle
	}
	n.setTitle(title)

	if d := Guard(route, n.sessionPresent(ctx)); d.Action == GuardRedirected {
		level.Info(n.logger).Log("msg", "auth required, redirecting to login", "path", path)
		n.notifier.Warning(warnLoginRequired)
		// Always pushed, even when replaying history: the login page the user
		// ends up on must be where Current and a further Back point.
		res, err := n.navigate(ctx, d.RedirectTo, domain.ScrollPosition{}, true)
		if err == nil {
			res.RedirectedFrom = path
		}
		return res, err
	}

	if err := n.loader.Load(ctx, route); err != nil {
		if errors.Is(err, ErrStaleModule) {
			level.Error(n.logger).Log("msg", "stale route module, reloading application", "path", path, "err", err)
			n.reloader.Reload()
			return NavResult{}, err
		}
		level.Error(n.logger).Log("msg", "navigation failed", "path", path, "err", err)
		return NavResult{}, err
	}

	n.mu.Lock()
	if push {
		n.history = append(n.history, historyEntry{path: path})
	}
	n.mu.Unlock()
	return NavResult{Route: route, Params: params, Title: title, Scroll: scroll}, nil
}

// sessionPresent re-reads the persisted user from durable storage. A missing
// or unparseable record counts as no session; the guard deliberately does not
// consult the session store's in-memory user.
func (n *Navigator) sessionPresent(ctx context.Context) bool {
	_, err := helpers.GetJSON[domain.User](ctx, n.durable, domain.KeyUser)
	return err == nil
}

func (n *Navigator) setTitle(title string) {
	n.mu.Lock()
	n.title = title
	n.mu.Unlock()
}
