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
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/enterprise-values/tests/helpers"
	"github.com/sirupsen/logrus"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbOnly bool
	flag.BoolVar(&dbOnly, "db", false, "start only the database container")
	flag.Parse()

	usage := `
Run the enterprise-values testcontainers with the environment variables from the .env file.

Usage:

testcontainers [-h] [-db] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file
-db:           start only the database, for running the server locally

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		logrus.Infof("Loading environment variables from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			logrus.Fatalf("Failed to load environment variables: %v", err)
		}
	} else {
		logrus.Info("No environment file specified, using current environment variables")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	started := make(chan *helpers.TestContainers, 1)
	go func() {
		var (
			testContainers *helpers.TestContainers
			err            error
		)
		if dbOnly {
			testContainers, err = helpers.CreateDBTestContainers(nil)
		} else {
			testContainers, err = helpers.CreateAllTestContainers(nil)
		}
		if err != nil {
			logrus.Fatalf("Failed to create test containers: %v", err)
		}
		started <- testContainers
	}()

	var testContainers *helpers.TestContainers
	for testContainers == nil {
		select {
		case testContainers = <-started:
			logrus.Info("Test containers running, press Ctrl+C to stop")
		case sig := <-sigs:
			logrus.Infof("Received signal: %v before containers were ready", sig)
			return
		}
	}

	sig := <-sigs
	logrus.Infof("Received signal: %v, terminating test containers...", sig)
	testContainers.Terminate(nil)
}
