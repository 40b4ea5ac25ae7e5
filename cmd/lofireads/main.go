package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"lofireads/internal/config"
	"lofireads/internal/http/handlers"
	applog "lofireads/internal/log"
	"lofireads/internal/services"
	"lofireads/internal/storage"
	"lofireads/internal/stores"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	kv, err := storage.Open(cfg.DBDSN, time.Duration(cfg.StoreDelayMs)*time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userStore := stores.NewUserStore(kv)
	if err := userStore.SeedUsers(); err != nil {
		log.Fatal(err)
	}
	authSvc := services.NewAuthService(userStore)
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Stamp the request start so app log entries can carry latency
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("req_start", time.Now())
		return c.Next()
	})
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- App handlers ----------
	deps := handlers.NewDeps(kv, authSvc)

	// Public pages
	app.Get("/", deps.BookHandler.Home)
	app.Get("/books", deps.BookHandler.List)
	app.Get("/book", func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This book is no longer available"})
	})
	app.Get("/book/:id", deps.BookHandler.Detail)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)

	// Wishlist (per-user, login required)
	wish := app.Group("/wishlist", handlers.RequireUser(authSvc))
	wish.Get("/", deps.WishlistHandler.List)
	wish.Post("/", deps.WishlistHandler.Save)
	wish.Post("/delete", deps.WishlistHandler.Unsave)
	wish.Post("/clear", deps.WishlistHandler.Clear)
	wish.Post("/move-to-cart", deps.WishlistHandler.MoveToCart)

	// Checkout & Orders
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.Place)
	app.Get("/orders", handlers.RequireUser(authSvc), deps.OrderHandler.History)
	app.Get("/order/:id", handlers.RequireUser(authSvc), deps.OrderHandler.View)
	app.Post("/order/:id/cancel", handlers.RequireUser(authSvc), deps.OrderHandler.Cancel)

	// Reviews
	app.Post("/book/:id/reviews", handlers.RequireUser(authSvc), deps.ReviewHandler.Create)
	app.Post("/reviews/:id/helpful", deps.ReviewHandler.Helpful)
	app.Post("/reviews/:id/delete", handlers.RequireUser(authSvc), deps.ReviewHandler.Delete)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authH.Register)
	app.Post("/logout", authH.Logout)

	// Account
	account := app.Group("/account", handlers.RequireUser(authSvc))
	account.Get("/", deps.AccountHandler.View)
	account.Post("/profile", deps.AccountHandler.UpdateProfile)
	account.Post("/password", deps.AccountHandler.UpdatePassword)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
