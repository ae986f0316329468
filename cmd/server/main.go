package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/Ruben1155/BiblioApp/internal/apiclient"
	"github.com/Ruben1155/BiblioApp/internal/config"
	"github.com/Ruben1155/BiblioApp/internal/handler"
	"github.com/Ruben1155/BiblioApp/internal/session"
	"github.com/Ruben1155/BiblioApp/internal/templates"
	"github.com/Ruben1155/BiblioApp/internal/web"
)

func main() {
	logger := newLogger()

	app := &cli.Command{
		Name:    "biblioapp",
		Usage:   "Interfaz web del sistema de gestión de biblioteca",
		Version: "1.0.0",
		Commands: []*cli.Command{
			serveCommand(logger),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("error de aplicación: %v", err)
	}
}

func newLogger() *log.Logger {
	opts := log.Options{ReportTimestamp: true}
	return log.NewWithOptions(os.Stderr, opts)
}

func serveCommand(logger *log.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Inicia el servidor web",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Ruta del archivo de configuración",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Dirección de escucha (anula la configuración)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Nivel de log: debug, info, warn o error",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			godotenv.Load()

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if addr := cmd.String("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			if level := cmd.String("log-level"); level != "" {
				cfg.Log.Level = level
			}
			if parsed, err := log.ParseLevel(cfg.Log.Level); err == nil {
				logger.SetLevel(parsed)
			}

			router := buildRouter(cfg, logger)

			logger.Info("Servidor iniciado", "addr", cfg.Server.Addr, "api", cfg.API.BaseURL)
			return http.ListenAndServe(cfg.Server.Addr, router)
		},
	}
}

// buildRouter wires the API client, the session manager and every
// handler into the route table.
func buildRouter(cfg config.Config, logger *log.Logger) *web.Router {
	httpClient := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
	api := apiclient.New(cfg.API.BaseURL, httpClient, logger)

	bookSvc := apiclient.NewBookService(api)
	userSvc := apiclient.NewUserService(api)
	loanSvc := apiclient.NewLoanService(api)
	authSvc := apiclient.NewAuthService(api)

	sessions := session.NewManager([]byte(cfg.Session.AuthKey))
	render := handler.NewRenderer(templates.New(), sessions, logger)

	home := handler.NewHome(authSvc, userSvc, sessions, render, logger)
	books := handler.NewBooks(bookSvc, sessions, render, logger)
	users := handler.NewUsers(userSvc, sessions, render, logger)
	loans := handler.NewLoans(loanSvc, userSvc, bookSvc, sessions, render, logger)
	dashboard := handler.NewDashboard(bookSvc, userSvc, loanSvc, sessions, render, logger)

	rt := web.NewRouter()
	rt.Use(
		web.RequestID(),
		web.Logging(logger),
		web.Recover(logger),
		web.VerifyCSRF(sessions),
	)

	admin := web.RequireRole(sessions, session.AdminRole, render.AccessDenied())
	loginLimit := web.NewRateLimiter(rate.Every(2*time.Second), 5).Middleware()

	rt.HandleFunc("GET", "/{$}", home.LoginPage)
	rt.HandleFunc("POST", "/login", home.Login, loginLimit)
	rt.HandleFunc("POST", "/logout", home.Logout)
	rt.HandleFunc("GET", "/register", home.RegisterPage)
	rt.HandleFunc("POST", "/register", home.Register)

	rt.HandleFunc("GET", "/books", books.List)
	rt.HandleFunc("GET", "/books/new", books.CreateForm)
	rt.HandleFunc("POST", "/books/new", books.Create)
	rt.HandleFunc("GET", "/books/export/pdf", books.ExportPDF)
	rt.HandleFunc("GET", "/books/export/xlsx", books.ExportExcel)
	rt.HandleFunc("GET", "/books/{id}", books.Detail)
	rt.HandleFunc("GET", "/books/{id}/edit", books.EditForm)
	rt.HandleFunc("POST", "/books/{id}/edit", books.Edit)
	rt.HandleFunc("GET", "/books/{id}/delete", books.DeleteForm)
	rt.HandleFunc("POST", "/books/{id}/delete", books.Delete)

	rt.HandleFunc("GET", "/users", users.List, admin)
	rt.HandleFunc("GET", "/users/new", users.CreateForm, admin)
	rt.HandleFunc("POST", "/users/new", users.Create, admin)
	rt.HandleFunc("GET", "/users/export/pdf", users.ExportPDF, admin)
	rt.HandleFunc("GET", "/users/export/xlsx", users.ExportExcel, admin)
	rt.HandleFunc("GET", "/users/{id}", users.Detail, admin)
	rt.HandleFunc("GET", "/users/{id}/edit", users.EditForm, admin)
	rt.HandleFunc("POST", "/users/{id}/edit", users.Edit, admin)
	rt.HandleFunc("GET", "/users/{id}/delete", users.DeleteForm, admin)
	rt.HandleFunc("POST", "/users/{id}/delete", users.Delete, admin)

	rt.HandleFunc("GET", "/loans", loans.List)
	rt.HandleFunc("GET", "/loans/new", loans.CreateForm)
	rt.HandleFunc("POST", "/loans/new", loans.Create)
	rt.HandleFunc("GET", "/loans/export/pdf", loans.ExportPDF)
	rt.HandleFunc("GET", "/loans/export/xlsx", loans.ExportExcel)
	rt.HandleFunc("GET", "/loans/{id}/return", loans.ReturnForm)
	rt.HandleFunc("POST", "/loans/{id}/return", loans.Return)
	rt.HandleFunc("GET", "/loans/{id}/delete", loans.DeleteForm)
	rt.HandleFunc("POST", "/loans/{id}/delete", loans.Delete)

	rt.HandleFunc("GET", "/dashboard", dashboard.Index, admin)

	return rt
}
