// reserved_symbols.go
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/localnerve/enterprise-values/data"
	"github.com/sirupsen/logrus"
)

// ReservedSymbols is an immutable set of exchange ticker symbols that
// enterprises may not register. Membership is exact and case-sensitive.
type ReservedSymbols struct {
	set map[string]struct{}
}

// NewReservedSymbols builds a set from symbols
func NewReservedSymbols(symbols ...string) ReservedSymbols {
	set := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		set[s] = struct{}{}
	}
	return ReservedSymbols{set: set}
}

// ParseReservedSymbols reads one symbol per line. Blank lines and lines
// starting with # are skipped.
func ParseReservedSymbols(r io.Reader) (ReservedSymbols, error) {
	var symbols []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		symbols = append(symbols, line)
	}
	if err := scanner.Err(); err != nil {
		return ReservedSymbols{}, fmt.Errorf("read reserved symbols: %w", err)
	}
	return NewReservedSymbols(symbols...), nil
}

// LoadReservedSymbols reads the set from path, or from the embedded NYSE
// list when path is empty
func LoadReservedSymbols(path string) (ReservedSymbols, error) {
	if path == "" {
		reserved, err := ParseReservedSymbols(strings.NewReader(data.NYSESymbols))
		if err == nil {
			logrus.WithField("count", reserved.Len()).Info("Loaded embedded reserved symbols")
		}
		return reserved, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ReservedSymbols{}, fmt.Errorf("open reserved symbols: %w", err)
	}
	defer f.Close()

	reserved, err := ParseReservedSymbols(f)
	if err != nil {
		return ReservedSymbols{}, err
	}
	logrus.WithFields(logrus.Fields{
		"count": reserved.Len(),
		"path":  path,
	}).Info("Loaded reserved symbols")
	return reserved, nil
}

// Contains reports whether symbol is reserved
func (r ReservedSymbols) Contains(symbol string) bool {
	_, ok := r.set[symbol]
	return ok
}

// Len is the number of reserved symbols
func (r ReservedSymbols) Len() int {
	return len(r.set)
}
