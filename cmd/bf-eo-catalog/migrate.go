package main

import (
	"github.com/pressly/goose/v3"
	cli "gopkg.in/urfave/cli.v1"

	_ "github.com/venicegeo/bf-eo-catalog/migrations"
	"github.com/venicegeo/bf-eo-catalog/util"
)

var runMigrationsFunc = goose.Up

func migrateDatabaseAction(*cli.Context) error {
	logContext := &util.BasicLogContext{}
	database, err := getDbConnectionFunc(logContext)
	if err != nil {
		return util.LogSimpleErr(logContext, "Could not open database connection: ", err)
	}
	defer database.Close()

	if err = goose.SetDialect("postgres"); err != nil {
		return util.LogSimpleErr(logContext, "Failed to set goose dialect: ", err)
	}
	if err = runMigrationsFunc(database, "."); err != nil {
		return util.LogSimpleErr(logContext, "Failed to run migrations: ", err)
	}
	util.LogInfo(logContext, "Database schema is up to date")
	return nil
}
