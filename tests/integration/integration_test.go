// integration_test.go
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

package integration_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/enterprise-values/internal/auth"
	"github.com/localnerve/enterprise-values/internal/database"
	"github.com/localnerve/enterprise-values/internal/handlers"
	"github.com/localnerve/enterprise-values/internal/middleware"
	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/tests/helpers"
	"gorm.io/gorm"
)

// dbEnv is the container environment for one database flavor
type dbEnv struct {
	dbType string
	image  string
	port   string
}

func (e dbEnv) apply(t *testing.T) {
	t.Setenv("DB_TYPE", e.dbType)
	t.Setenv("DB_IMAGE", e.image)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", e.port)
	t.Setenv("DB_DATABASE", "enterprises")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_ROOT_PASSWORD", "rootpass")
}

func imageOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// TestWithMariaDB tests the service with a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	runSuite(t, dbEnv{dbType: "mariadb", image: imageOr("MARIADB_IMAGE", "mariadb:11.4"), port: "3306"})
}

// TestWithPostgreSQL tests the service with a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	runSuite(t, dbEnv{dbType: "postgres", image: imageOr("POSTGRES_IMAGE", "postgres:17"), port: "5432"})
}

func runSuite(t *testing.T, env dbEnv) {
	env.apply(t)

	containers, err := helpers.CreateDBTestContainers(t)
	if err != nil {
		t.Fatalf("Failed to start database container: %v", err)
	}
	defer containers.Terminate(t)

	db, err := database.Connect(containers.Config())
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("CreateListAndChart", func(t *testing.T) {
		testCreateListAndChart(t, db)
	})

	t.Run("ConcurrentSymbolClaims", func(t *testing.T) {
		testConcurrentSymbolClaims(t, db)
	})

	t.Run("ChartImageRoute", func(t *testing.T) {
		testChartImageRoute(t, db)
	})
}

func newService(db *gorm.DB) *services.EnterpriseService {
	validator := services.NewEnterpriseValidator(services.NewReservedSymbols("IBM"))
	return services.NewEnterpriseService(db, validator, ",", 10)
}

func testCreateListAndChart(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	owner := helpers.CreateTestUser(t, db, "integration", "secret")
	svc := newService(db)

	created, err := svc.Create(ctx, services.CreateEnterpriseInput{
		Name:        "Acme Integration",
		Description: "Integration enterprise",
		Symbol:      "ACI",
		Values:      "Quality, quality, Trust",
	}, owner)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := created.ValueNames(); len(got) != 2 || got[0] != "quality" || got[1] != "trust" {
		t.Errorf("Expected [quality trust], got %v", got)
	}

	_, err = svc.Create(ctx, services.CreateEnterpriseInput{
		Name:        "Second Integration",
		Description: "Another one",
		Symbol:      "SCI",
		Values:      "trust",
	}, owner)
	if err != nil {
		t.Fatalf("Second create failed: %v", err)
	}

	_, err = svc.Create(ctx, services.CreateEnterpriseInput{
		Name:        "Reserved",
		Description: "Uses a listed symbol",
		Symbol:      "IBM",
	}, owner)
	if verr, ok := services.AsValidationError(err); !ok || !verr.Has("symbol", services.SymbolReserved) {
		t.Errorf("Expected reserved symbol failure, got %v", err)
	}

	page, err := svc.List(ctx, 1, owner.UserID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("Expected 2 enterprises, got total=%d items=%d", page.Total, len(page.Items))
	}

	freq, err := svc.ValueFrequency(ctx)
	if err != nil {
		t.Fatalf("ValueFrequency failed: %v", err)
	}
	counts := map[string]int{}
	for i, name := range freq.Names {
		counts[name] = freq.Counts[i]
	}
	if counts["trust"] != 2 || counts["quality"] != 1 {
		t.Errorf("Unexpected frequency %v", counts)
	}
}

// testConcurrentSymbolClaims races creates for one symbol; exactly one must win
func testConcurrentSymbolClaims(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	owner := helpers.CreateTestUser(t, db, "racer", "secret")
	svc := newService(db)

	const racers = 4
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		rejected int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ctx, services.CreateEnterpriseInput{
				Name:        "Racer " + string(rune('A'+i)),
				Description: "Races for a symbol",
				Symbol:      "RAC",
			}, owner)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			verr, ok := services.AsValidationError(err)
			if (ok && verr.Has("symbol", services.SymbolTaken)) || errors.Is(err, services.ErrPersistenceConflict) {
				rejected++
				return
			}
			t.Errorf("Unexpected create error: %v", err)
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("Expected exactly one winner, got %d", wins)
	}
	if wins+rejected != racers {
		t.Errorf("Expected %d outcomes, got %d", racers, wins+rejected)
	}

	var count int64
	if err := db.Model(&models.Enterprise{}).Where("symbol = ?", "RAC").Count(&count).Error; err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected one stored RAC enterprise, got %d", count)
	}
}

func testChartImageRoute(t *testing.T, db *gorm.DB) {
	users := services.NewUserService(db)
	reserved := services.NewReservedSymbols("IBM")
	enterprises := services.NewEnterpriseService(db, services.NewEnterpriseValidator(reserved), ",", 10)
	session := &middleware.Session{
		Tokens:     auth.NewTokenManager("integration-secret", "integration", time.Hour),
		Users:      users,
		CookieName: "session",
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app, &handlers.Handlers{
		Health:      &handlers.HealthHandler{Config: nil, DB: db, Reserved: reserved},
		Auth:        &handlers.AuthHandler{Users: users, Session: session},
		Profile:     &handlers.ProfileHandler{Users: users, Enterprises: enterprises},
		Enterprises: &handlers.EnterpriseHandler{Enterprises: enterprises},
		Chart:       &handlers.ChartHandler{Enterprises: enterprises},
	}, session)

	user := helpers.CreateTestUser(t, db, "charter", "secret")
	token, _, err := session.Tokens.Generate(user, false)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/chart.png", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, http.StatusOK)
	body := helpers.AssertContentType(t, resp, "image/png")
	if len(body) < 8 || string(body[1:4]) != "PNG" {
		t.Errorf("Expected PNG data")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/chart", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, http.StatusOK)

	var view handlers.ChartView
	helpers.ParseJSON(t, resp, &view)
	if len(view.Names) != len(view.Counts) || len(view.Names) == 0 {
		t.Errorf("Expected chart data, got %+v", view)
	}
}
