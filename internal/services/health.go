// health.go
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

package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/localnerve/enterprise-values/internal/config"
	"github.com/localnerve/enterprise-values/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status          string            `json:"status"`
	Database        string            `json:"database"`
	ReservedSymbols int               `json:"reservedSymbols"`
	Details         map[string]string `json:"details,omitempty"`
	ErrorMessage    string            `json:"error,omitempty"`
}

// Healthy reports whether every check passed
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(ctx context.Context, cfg *config.Config, db *gorm.DB, reserved ReservedSymbols) HealthCheckResult {
	result := HealthCheckResult{
		Status:          "healthy",
		ReservedSymbols: reserved.Len(),
		Details:         make(map[string]string),
	}

	fail := func(key, database string, err error, format string) {
		result.Status = "unhealthy"
		result.Database = database
		result.Details[key] = err.Error()
		msg := fmt.Sprintf(format, err)
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
		logrus.WithError(err).Warn("Health check failed - " + key)
	}

	// TCP reachability first, so a dead server is reported as such
	if cfg.IsNetworked() {
		if err := utils.PingDatabase(cfg.DBHost, cfg.DBPort); err != nil {
			fail("database_host_error", "unreachable", err, "Database host unreachable: %v")
		}
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		fail("database_error", "error", err, "Database connection error: %v")
	} else if err := sqlDB.PingContext(ctx); err != nil {
		fail("database_ping_error", "unreachable", err, "Database ping failed: %v")
	} else if result.Database == "" {
		result.Database = "ok"
		result.Details["database_type"] = cfg.DBType
		result.Details["database_name"] = cfg.DBDatabase
	}

	if reserved.Len() == 0 {
		result.Status = "unhealthy"
		result.Details["reserved_symbols"] = "empty"
		logrus.Warn("Health check failed - no reserved symbols loaded")
	} else {
		result.Details["reserved_symbols"] = strconv.Itoa(reserved.Len())
	}

	if result.Healthy() {
		logrus.Debug("Health check passed - all systems operational")
	}

	return result
}
