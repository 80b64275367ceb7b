// routes.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/middleware"
)

// Handlers groups every route handler the service mounts
type Handlers struct {
	Health      *HealthHandler
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Enterprises *EnterpriseHandler
	Chart       *ChartHandler
}

// Register mounts the public and authenticated routes on app
func Register(app *fiber.App, h *Handlers, session *middleware.Session) {
	app.Get("/health", h.Health.GetHealth)

	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/logout", h.Auth.Logout)

	authUser := session.AuthUser()

	api.Get("/profile", authUser, h.Profile.GetProfile)
	api.Put("/profile", authUser, h.Profile.UpdateProfile)
	api.Get("/users/:username", authUser, h.Profile.GetUser)

	api.Get("/enterprises", authUser, h.Enterprises.ListEnterprises)
	api.Post("/enterprises", authUser, h.Enterprises.CreateEnterprise)
	api.Get("/enterprises/:id", authUser, h.Enterprises.GetEnterprise)

	api.Get("/chart", authUser, h.Chart.GetChartData)
	api.Get("/chart.png", authUser, h.Chart.GetChartImage)
}
