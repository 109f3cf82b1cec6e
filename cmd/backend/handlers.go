package main

import (
	"net/http"
	"time"

	"mystorefront/auth"
	"mystorefront/domain"
	"mystorefront/helpers"
	"mystorefront/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// account is one seeded backend user: the stored bcrypt hash plus the profile
// returned on login.
type account struct {
	passwordHash []byte
	user         domain.User
}

// Backend serves the two endpoints the storefront client consumes: login and
// the product catalog. Accounts and products are seeded in memory.
type Backend struct {
	accounts map[string]account
	products []domain.Product
	secret   []byte
	tokenTTL time.Duration
	clock    interfaces.TimeProvider
	logger   log.Logger
}

// NewBackend creates the backend with seeded accounts and products. Account
// passwords are bcrypt-hashed at startup; a hash failure is returned as an
// error rather than panicking. Panics on nil clock or logger.
func NewBackend(cfg *Config, clock interfaces.TimeProvider, logger log.Logger) (*Backend, error) {
	b := &Backend{
		accounts: make(map[string]account),
		products: seedProducts(),
		secret:   cfg.AuthSecret,
		tokenTTL: cfg.TokenTTL,
		clock:    helpers.NilPanic(clock, "cmd.backend.handlers.go: clock is required"),
		logger:   log.WithPrefix(helpers.NilPanic(logger, "cmd.backend.handlers.go: logger is required"), "component", "Backend"),
	}
	for _, seed := range seedAccounts() {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		b.accounts[seed.user.Phone] = account{passwordHash: hash, user: seed.user}
	}
	return b, nil
}

// RegisterHandlers wires the backend routes onto the echo instance.
func RegisterHandlers(e *echo.Echo, b *Backend) {
	e.POST("/auth/login", b.Login)
	e.GET("/products", b.GetProducts)
}

// Login (POST /auth/login) checks the phone/password pair against the seeded
// accounts. Success returns the envelope the client recognizes (message
// 登录成功, data carrying the user profile with a fresh token); any failure
// returns 401 with a generic message so the response does not reveal whether
// the phone exists.
func (b *Backend) Login(ectx echo.Context) error {
	var req domain.LoginRequest
	if err := ectx.Bind(&req); err != nil {
		return ectx.JSON(http.StatusBadRequest, domain.APIResponse{Message: "invalid request body"})
	}

	acc, ok := b.accounts[req.Phone]
	if ok {
		ok = bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(req.Password)) == nil
	}
	if !ok {
		level.Info(b.logger).Log("msg", "login rejected", "phone", req.Phone)
		return ectx.JSON(http.StatusUnauthorized, domain.APIResponse{Message: "invalid phone or password"})
	}

	now := b.clock.Now()
	token, err := auth.CreateToken(acc.user.Phone, acc.user.Role, uuid.NewString(), now.Add(b.tokenTTL), now, b.secret)
	if err != nil {
		level.Error(b.logger).Log("msg", "failed to issue token", "err", err)
		return ectx.JSON(http.StatusInternalServerError, domain.APIResponse{Message: "internal server error"})
	}

	user := acc.user
	user.Token = token
	level.Info(b.logger).Log("msg", "login accepted", "phone", user.Phone, "role", user.Role)
	return ectx.JSON(http.StatusOK, envelope(domain.LoginSuccessMessage, user))
}

// GetProducts (GET /products) returns the seeded catalog.
func (b *Backend) GetProducts(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, envelope("ok", b.products))
}

// envelope builds the message+data response shape shared with the client.
func envelope(message string, data any) map[string]any {
	return map[string]any{"message": message, "data": data}
}

// seedAccount pairs a plaintext seed password with the profile it unlocks.
type seedAccount struct {
	password string
	user     domain.User
}

func seedAccounts() []seedAccount {
	return []seedAccount{
		{password: "123456", user: domain.User{ID: 1, Phone: "13800138000", Username: "alice", Role: domain.DefaultRole}},
		{password: "admin123", user: domain.User{ID: 2, Phone: "13900139000", Username: "admin", Role: "admin"}},
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Wireless Mouse", Price: 59.9, Stock: 12},
		{ID: 2, Name: "Mechanical Keyboard", Price: 299.0, Stock: 5},
		{ID: 3, Name: "USB-C Hub", Price: 129.5, Stock: 0},
		{ID: 4, Name: "Laptop Stand", Price: 89.0, Stock: 20},
	}
}
