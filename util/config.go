// Copyright 2016, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	PORT                    = "PORT"
	DATABASE_URL            = "DATABASE_URL"
	VCAP_SERVICES           = "VCAP_SERVICES"
	EO_CATALOG_DB_SERVICE   = "EO_CATALOG_DB_SERVICE"
	EO_CATALOG_HTTP_TIMEOUT = "EO_CATALOG_HTTP_TIMEOUT"
)

const (
	defaultPort        = "8080"
	defaultDBService   = "pz-postgres"
	defaultHTTPTimeout = 30 * time.Second
)

// LoadEnvFiles loads variables from .env style files into the environment.
// Variables already set are left alone and missing files are ignored.
func LoadEnvFiles(ctx LogContext, paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			LogAlert(ctx, fmt.Sprintf("Could not load environment file `%s`: %v", path, err))
			continue
		}
		LogInfo(ctx, fmt.Sprintf("Loaded environment file `%s`", path))
	}
}

// GetPortStr returns the listen address built from the PORT environment variable
func GetPortStr() string {
	port, ok := os.LookupEnv(PORT)
	if !ok || port == "" {
		port = defaultPort
	}
	return ":" + port
}

// GetDatabaseURL returns a string for the DATABASE_URL environment variable
func GetDatabaseURL() string {
	return os.Getenv(DATABASE_URL)
}

// GetVcapServices returns the raw VCAP_SERVICES environment variable
func GetVcapServices() []byte {
	return []byte(os.Getenv(VCAP_SERVICES))
}

// GetDBServiceName returns the name of the VCAP service holding database
// credentials, falling back to the shared Postgres service
func GetDBServiceName() string {
	name, ok := os.LookupEnv(EO_CATALOG_DB_SERVICE)
	if !ok || name == "" {
		return defaultDBService
	}
	return name
}

// GetHTTPTimeout returns the timeout used when fetching documents from remote
// sources, as configured by EO_CATALOG_HTTP_TIMEOUT
func GetHTTPTimeout() time.Duration {
	raw, ok := os.LookupEnv(EO_CATALOG_HTTP_TIMEOUT)
	if !ok {
		return defaultHTTPTimeout
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil || timeout <= 0 {
		LogAlert(&BasicLogContext{}, fmt.Sprintf("Invalid %s value `%s`. Using default of %v.", EO_CATALOG_HTTP_TIMEOUT, raw, defaultHTTPTimeout))
		return defaultHTTPTimeout
	}
	return timeout
}
