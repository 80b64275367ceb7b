// health_test.go
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

package services_test

import (
	"context"
	"testing"

	"github.com/localnerve/enterprise-values/internal/config"
	"github.com/localnerve/enterprise-values/internal/database"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	db := helpers.NewTestDB(t)
	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:"}

	result := services.HealthCheck(context.Background(), cfg, db, services.NewReservedSymbols("IBM"))
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, 1, result.ReservedSymbols)

	result = services.HealthCheck(context.Background(), cfg, db, services.NewReservedSymbols())
	assert.False(t, result.Healthy())
}

func TestHealthCheckClosedDatabase(t *testing.T) {
	db := helpers.NewTestDB(t)
	require.NoError(t, database.Close(db))
	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:"}

	result := services.HealthCheck(context.Background(), cfg, db, services.NewReservedSymbols("IBM"))
	assert.False(t, result.Healthy())
	assert.Equal(t, "unreachable", result.Database)
	assert.NotEmpty(t, result.ErrorMessage)
}
