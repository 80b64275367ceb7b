// enterprise_service_test.go
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
	"strings"
	"testing"
	"time"

	"github.com/localnerve/enterprise-values/internal/database"
	"github.com/localnerve/enterprise-values/internal/models"
	"github.com/localnerve/enterprise-values/internal/services"
	"github.com/localnerve/enterprise-values/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnterpriseService(db *gorm.DB, reserved ...string) *services.EnterpriseService {
	validator := services.NewEnterpriseValidator(services.NewReservedSymbols(reserved...))
	return services.NewEnterpriseService(db, validator, ",", 2)
}

func createInput(name, symbol, values string) services.CreateEnterpriseInput {
	return services.CreateEnterpriseInput{
		Name:        name,
		Description: name + " makes things",
		Symbol:      symbol,
		Values:      values,
	}
}

func TestCreateEnterpriseNormalizesValues(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")
	svc := newEnterpriseService(db)

	enterprise, err := svc.Create(context.Background(), createInput("Acme", "ACM", "a, a, B"), owner)
	require.NoError(t, err)

	assert.False(t, enterprise.EnterpriseID.IsZero())
	assert.Equal(t, []string{"a", "b"}, enterprise.ValueNames())
	assert.Equal(t, owner, enterprise.Owner)
	assert.Equal(t, int64(2), helpers.CountRows(t, db, "value_tags"))
	assert.Equal(t, int64(2), helpers.CountRows(t, db, "enterprise_value_tags"))

	stored, err := svc.Get(context.Background(), enterprise.EnterpriseID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, stored.ValueNames())
}

func TestCreateEnterpriseReusesSharedValues(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")
	svc := newEnterpriseService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, createInput("Acme", "ACM", "Tech, bio"), owner)
	require.NoError(t, err)
	second, err := svc.Create(ctx, createInput("Bolt", "BLT", "tech,,  ,green"), owner)
	require.NoError(t, err)

	assert.Equal(t, []string{"tech", "green"}, second.ValueNames())
	assert.Equal(t, first.Values[0].ValueID, second.Values[0].ValueID)
	assert.Equal(t, int64(3), helpers.CountRows(t, db, "value_tags"))
}

func TestCreateEnterpriseWithoutValues(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")

	enterprise, err := newEnterpriseService(db).Create(context.Background(), createInput("Acme", "ACM", ""), owner)
	require.NoError(t, err)
	assert.Empty(t, enterprise.Values)
	assert.Equal(t, int64(0), helpers.CountRows(t, db, "enterprise_value_tags"))
}

func TestCreateEnterpriseSymbolTakenPersistsNothing(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")
	svc := newEnterpriseService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Big Blue", "IBM", "tech"), owner)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput("Other", "IBM", "tech, fresh"), owner)
	verr, ok := services.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.Equal(t, []services.FailureKind{services.SymbolTaken}, verr.Kinds())

	assert.Equal(t, int64(1), helpers.CountRows(t, db, "enterprises"))
	assert.Equal(t, int64(1), helpers.CountRows(t, db, "value_tags"))
	assert.Equal(t, int64(1), helpers.CountRows(t, db, "enterprise_value_tags"))
}

func TestCreateEnterpriseReservedSymbol(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")

	_, err := newEnterpriseService(db, "KOF").Create(context.Background(), createInput("Acme", "KOF", "x"), owner)
	verr, ok := services.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has("symbol", services.SymbolReserved))
	assert.Equal(t, int64(0), helpers.CountRows(t, db, "value_tags"))
}

func TestCreateEnterpriseNameTaken(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")
	svc := newEnterpriseService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Acme", "ACM", ""), owner)
	require.NoError(t, err)

	_, err = svc.Create(ctx, createInput("Acme", "ACN", ""), owner)
	verr, ok := services.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []services.FailureKind{services.NameTaken}, verr.Kinds())
}

func TestCreateEnterpriseTooManyValues(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")

	_, err := newEnterpriseService(db).Create(context.Background(),
		createInput("Acme", "ACM", "a,b,c,d,e,f,g,h,i,j,k"), owner)
	verr, ok := services.AsValidationError(err)
	require.True(t, ok)
	assert.True(t, verr.Has("values", services.TooManyValues))
}

func TestCreateEnterpriseValueTooLongPersistsNothing(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")

	_, err := newEnterpriseService(db).Create(context.Background(),
		createInput("Acme", "ACM", "tech, "+strings.Repeat("x", 300)), owner)
	verr, ok := services.AsValidationError(err)
	require.True(t, ok, "expected validation error, got %v", err)
	assert.True(t, verr.Has("values", services.TooLong))

	assert.Equal(t, int64(0), helpers.CountRows(t, db, "enterprises"))
	assert.Equal(t, int64(0), helpers.CountRows(t, db, "value_tags"))
	assert.Equal(t, int64(0), helpers.CountRows(t, db, "enterprise_value_tags"))
}

func TestCreateEnterpriseUnavailable(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")
	require.NoError(t, database.Close(db))

	_, err := newEnterpriseService(db).Create(context.Background(), createInput("Acme", "ACM", "tech"), owner)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrPersistenceUnavailable)
}

func TestGetEnterpriseNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)

	_, err := newEnterpriseService(db).Get(context.Background(), models.NewGUID())
	assert.ErrorIs(t, err, services.ErrEnterpriseNotFound)
}

func TestListEnterprisesPages(t *testing.T) {
	db := helpers.NewTestDB(t)
	alice := helpers.CreateTestUser(t, db, "alice", "secret")
	bob := helpers.CreateTestUser(t, db, "bob", "secret")
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	helpers.CreateTestEnterprise(t, db, alice, "One", "AAA", base)
	helpers.CreateTestEnterprise(t, db, bob, "Two", "BBB", base.Add(time.Minute))
	helpers.CreateTestEnterprise(t, db, alice, "Three", "CCC", base.Add(2*time.Minute))

	svc := newEnterpriseService(db)

	page, err := svc.List(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, page.PerPage)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Three", page.Items[0].Name)
	assert.True(t, page.HasNext())

	page, err = svc.List(context.Background(), 1, bob.UserID)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Two", page.Items[0].Name)
}

func TestValueFrequency(t *testing.T) {
	db := helpers.NewTestDB(t)
	owner := helpers.CreateTestUser(t, db, "alice", "secret")
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	helpers.CreateTestEnterprise(t, db, owner, "One", "AAA", base, "tech")
	helpers.CreateTestEnterprise(t, db, owner, "Two", "BBB", base.Add(time.Minute), "tech", "bio")

	freq, err := newEnterpriseService(db).ValueFrequency(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tech", "bio"}, freq.Names)
	assert.Equal(t, []int{2, 1}, freq.Counts)
}

func TestValueFrequencyEmpty(t *testing.T) {
	db := helpers.NewTestDB(t)

	freq, err := newEnterpriseService(db).ValueFrequency(context.Background())
	require.NoError(t, err)
	assert.Zero(t, freq.Len())
}
