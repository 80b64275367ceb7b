// main.go
//
// Enterprise registry with free-text values and a value-frequency chart
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of enterprise-values.
// enterprise-values is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// enterprise-values is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with enterprise-values.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/localnerve/enterprise-values/internal/auth"
	"github.com/localnerve/enterprise-values/internal/config"
	"github.com/localnerve/enterprise-values/internal/database"
	"github.com/localnerve/enterprise-values/internal/handlers"
	"github.com/localnerve/enterprise-values/internal/logging"
	"github.com/localnerve/enterprise-values/internal/middleware"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/sirupsen/logrus"

	_ "github.com/localnerve/enterprise-values/docs/api" // Swagger docs
)

// @title Enterprise Values API
// @version 1.0.0
// @description Enterprise registry with free-text value tags and a value frequency chart
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/enterprise-values
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to a .env file")
	flag.Parse()

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			logrus.Fatalf("Failed to load environment variables from %s: %v", envFilename, err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	reserved, err := services.LoadReservedSymbols(cfg.ReservedSymbolsFile)
	if err != nil {
		logrus.Fatalf("Failed to load reserved symbols: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	users := services.NewUserService(db)
	enterprises := services.NewEnterpriseService(
		db,
		services.NewEnterpriseValidator(reserved),
		cfg.ValueSeparator,
		cfg.EnterprisesPerPage,
	)
	session := &middleware.Session{
		Tokens:     auth.NewTokenManager(cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL),
		Users:      users,
		CookieName: cfg.SessionCookieName,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		AppName:      "enterprise-values",
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("enterprise_values")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.Register(app, &handlers.Handlers{
		Health:      &handlers.HealthHandler{Config: cfg, DB: db, Reserved: reserved},
		Auth:        &handlers.AuthHandler{Users: users, Session: session},
		Profile:     &handlers.ProfileHandler{Users: users, Enterprises: enterprises},
		Enterprises: &handlers.EnterpriseHandler{Enterprises: enterprises},
		Chart:       &handlers.ChartHandler{Enterprises: enterprises},
	}, session)

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logrus.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	logrus.WithField("port", cfg.Port).Info("Starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}

	logrus.Info("Server stopped")
}
