// enterprise_validator.go
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
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field limits, in characters
const (
	MaxEnterpriseName        = 64
	MaxEnterpriseDescription = 140
	MaxEnterpriseSymbol      = 10
	MaxEnterpriseValues      = 10
	MaxValueName             = 64
)

// symbolPattern matches three upper-case letters at the start of the input.
// The word boundary after them is checked by symbolMatches, since RE2 only
// knows ASCII word characters. Trailing punctuation is optional and the end
// of the input is not anchored, so "IBM-X" matches while "AAPL" does not.
var symbolPattern = regexp.MustCompile(`^[A-Z]{3}`)

// symbolMatches reports whether symbol starts with three upper-case letters
// that are not followed by a Unicode letter, digit or underscore
func symbolMatches(symbol string) bool {
	loc := symbolPattern.FindStringIndex(symbol)
	if loc == nil {
		return false
	}
	next, size := utf8.DecodeRuneInString(symbol[loc[1]:])
	if size == 0 {
		return true
	}
	return !(unicode.IsLetter(next) || unicode.IsNumber(next) || next == '_')
}

// EnterpriseLookup answers uniqueness questions against persisted enterprises
type EnterpriseLookup interface {
	SymbolExists(ctx context.Context, symbol string) (bool, error)
	NameExists(ctx context.Context, name string) (bool, error)
}

// EnterpriseCandidate is a proposed enterprise before persistence
type EnterpriseCandidate struct {
	Name        string
	Description string
	Symbol      string
	Values      []string
}

// EnterpriseValidator checks a candidate against the reserved symbol set and
// the persisted enterprises
type EnterpriseValidator struct {
	reserved ReservedSymbols
}

// NewEnterpriseValidator returns a validator bound to reserved
func NewEnterpriseValidator(reserved ReservedSymbols) *EnterpriseValidator {
	return &EnterpriseValidator{reserved: reserved}
}

// Validate returns a *ValidationError listing every failed field, nil when
// the candidate is acceptable, or a lookup error.
//
// Symbol rules stop at the first failure; the reserved set is consulted
// before lookup is touched. Every tag in c.Values is bounded to MaxValueName.
func (v *EnterpriseValidator) Validate(ctx context.Context, lookup EnterpriseLookup, c EnterpriseCandidate) error {
	verr := &ValidationError{}

	checkText(verr, "name", c.Name, MaxEnterpriseName)
	checkText(verr, "description", c.Description, MaxEnterpriseDescription)
	checkText(verr, "symbol", c.Symbol, MaxEnterpriseSymbol)
	if len(c.Values) > MaxEnterpriseValues {
		verr.add("values", TooManyValues, msgTooManyValues)
	}
	for _, tag := range c.Values {
		if utf8.RuneCountInString(tag) > MaxValueName {
			verr.add("values", TooLong, tooLongMessage(MaxValueName))
			break
		}
	}

	// A symbol that is only too long still goes through the symbol rules
	if !verr.Has("symbol", Required) {
		if err := v.checkSymbol(ctx, lookup, verr, c.Symbol); err != nil {
			return err
		}
	}

	if !verr.failed("name") {
		taken, err := lookup.NameExists(ctx, c.Name)
		if err != nil {
			return err
		}
		if taken {
			verr.add("name", NameTaken, msgNameTaken)
		}
	}

	return verr.orNil()
}

func (v *EnterpriseValidator) checkSymbol(ctx context.Context, lookup EnterpriseLookup, verr *ValidationError, symbol string) error {
	if v.reserved.Contains(symbol) {
		verr.add("symbol", SymbolReserved, msgSymbolReserved)
		return nil
	}

	taken, err := lookup.SymbolExists(ctx, symbol)
	if err != nil {
		return err
	}
	if taken {
		verr.add("symbol", SymbolTaken, msgSymbolTaken)
		return nil
	}

	if !symbolMatches(symbol) {
		verr.add("symbol", SymbolFormatInvalid, msgSymbolFormat)
	}
	return nil
}

// checkText records Required for blank input and TooLong past limit characters
func checkText(verr *ValidationError, field, value string, limit int) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, Required, msgRequired)
		return
	}
	if utf8.RuneCountInString(value) > limit {
		verr.add(field, TooLong, tooLongMessage(limit))
	}
}

func tooLongMessage(limit int) string {
	return fmt.Sprintf(msgTooLong, limit)
}
