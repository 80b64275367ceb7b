// e2e_test.go
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

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/localnerve/enterprise-values/internal/database"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/tests/helpers"
)

// TestE2EWithFullStack tests the entire service stack
func TestE2EWithFullStack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}
	if os.Getenv("DB_TYPE") == "" {
		t.Skip("Skipping E2E test, no .env loaded")
	}

	ctx := context.Background()

	tc, err := helpers.CreateAllTestContainers(t)
	if err != nil {
		t.Fatalf("Failed to start test containers: %v", err)
	}
	defer tc.Terminate(t)

	appPort, err := tc.AppContainer.MappedPort(ctx, nat.Port(os.Getenv("PORT")+"/tcp"))
	if err != nil {
		t.Fatalf("Failed to get app port: %v", err)
	}
	appHost, _ := tc.AppContainer.Host(ctx)
	baseURL := fmt.Sprintf("http://%s:%s", appHost, appPort.Port())

	t.Run("HealthCheck", func(t *testing.T) {
		testHealthCheck(t, tc)
	})

	t.Run("PrometheusMetrics", func(t *testing.T) {
		testPrometheusMetrics(t, baseURL)
	})

	t.Run("SwaggerUI", func(t *testing.T) {
		testSwaggerUI(t, baseURL)
	})

	t.Run("RegisterCreateAndChart", func(t *testing.T) {
		testRegisterCreateAndChart(t, baseURL)
	})
}

func testHealthCheck(t *testing.T, tc *helpers.TestContainers) {
	cfg := tc.Config()

	gormDB, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	defer database.Close(gormDB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := services.HealthCheck(ctx, cfg, gormDB, services.NewReservedSymbols("IBM"))
	if !result.Healthy() {
		t.Errorf("Health check failed: %+v", result)
	}

	t.Logf("Health check passed: status=%s, database=%s", result.Status, result.Database)
}

func testPrometheusMetrics(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/metrics")
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for metrics, got %d. Body: %s", resp.StatusCode, string(body))
	}
	// The /health wait strategy has already been counted
	if !bytes.Contains(body, []byte(`service="enterprise_values"`)) {
		t.Errorf("Expected http metrics labelled for enterprise_values")
	}
}

func testSwaggerUI(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/swagger/doc.json")
	if err != nil {
		t.Fatalf("Failed to get swagger doc: %v", err)
	}
	helpers.AssertStatus(t, resp, http.StatusOK)

	var doc map[string]interface{}
	helpers.ParseJSON(t, resp, &doc)
	if _, ok := doc["paths"]; !ok {
		t.Errorf("Expected swagger paths, got %v", doc)
	}
}

func testRegisterCreateAndChart(t *testing.T, baseURL string) {
	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, Timeout: 10 * time.Second}

	post := func(path string, body interface{}) *http.Response {
		raw, _ := json.Marshal(body)
		resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("POST %s failed: %v", path, err)
		}
		return resp
	}

	resp := post("/api/auth/register", services.RegisterInput{
		Username:  "e2e",
		Email:     "e2e@example.com",
		Password:  "e2e-password",
		Password2: "e2e-password",
	})
	helpers.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = post("/api/auth/login", map[string]interface{}{
		"username": "e2e",
		"password": "e2e-password",
	})
	helpers.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = post("/api/enterprises", map[string]interface{}{
		"name":        "End To End",
		"description": "Created through the running service",
		"symbol":      "ETE",
		"values":      []string{"Speed", "trust"},
	})
	helpers.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp, err := client.Get(baseURL + "/api/chart.png")
	if err != nil {
		t.Fatalf("GET chart failed: %v", err)
	}
	helpers.AssertStatus(t, resp, http.StatusOK)
	helpers.AssertContentType(t, resp, "image/png")
}
