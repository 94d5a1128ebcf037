package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
	"github.com/venicegeo/bf-eo-catalog/util"
)

// connectionString reads the database URL from DATABASE_URL, falling back to
// the credentials of the database service in VCAP_SERVICES
func connectionString(ctx util.LogContext) (string, error) {
	connStr := util.GetDatabaseURL()
	if connStr != "" {
		return connStr, nil
	}

	util.LogInfo(ctx, "No DB connection found in DATABASE_URL, checking VCAP_SERVICES")
	services, err := util.ParseVcapServices(util.GetVcapServices())
	if err != nil {
		return "", errors.New("Could not get DB connection from DATABASE_URL or VCAP_SERVICES (no valid VCAP_SERVICES found): " + err.Error())
	}
	serviceName := util.GetDBServiceName()
	service := services.FindServiceByName(serviceName)
	if service == nil {
		return "", fmt.Errorf("Could not get DB connection from DATABASE_URL or VCAP_SERVICES ('%s' service not found); available services: %v",
			serviceName, services.GetServiceNames())
	}
	connStr, err = service.Credentials.String("uri")
	if err != nil {
		return "", errors.New("Could not get DB connection from DATABASE_URL or VCAP_SERVICES (error getting URI string): " + err.Error())
	}
	return connStr, nil
}

// disableSSL sets sslmode=disable unless the URL already chooses a mode
func disableSSL(connStr string) (string, error) {
	dbURI, err := url.Parse(connStr)
	if err != nil {
		return "", err
	}
	params := dbURI.Query()
	if params.Get("sslmode") == "" {
		// pq expects SSL to be enabled if not explicitly disabled
		params.Set("sslmode", "disable")
	}
	dbURI.RawQuery = params.Encode()
	return dbURI.String(), nil
}

// getDbConnection opens a new database connection.
func getDbConnection(ctx util.LogContext) (*sql.DB, error) {
	connStr, err := connectionString(ctx)
	if err != nil {
		return nil, err
	}
	connStr, err = disableSSL(connStr)
	if err != nil {
		return nil, err
	}

	util.LogInfo(ctx, "Creating database connection")
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

var getDbConnectionFunc = getDbConnection
