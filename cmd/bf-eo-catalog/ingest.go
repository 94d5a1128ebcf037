package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/venicegeo/bf-eo-catalog/catalog/db"
	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/bf-eo-catalog/util"
	cli "gopkg.in/urfave/cli.v1"
)

func ingestAction(c *cli.Context) error {
	locator, err := locatorArg(c)
	if err != nil {
		return err
	}
	if c.Bool("list") {
		return ingestList(locator, c.Bool("gzip") || strings.HasSuffix(strings.ToLower(locator), "gz"))
	}
	return ingestOne(locator)
}

func ingestList(locator string, useGzip bool) error {
	importer := db.NewImporter(locator, useGzip, getDbConnectionFunc, newSourceFunc())
	result, err := importer.Import(context.Background(), nil)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, result)
	return err
}

func ingestOne(locator string) error {
	logContext := &util.BasicLogContext{}

	item, err := eo.LoadItem(context.Background(), newSourceFunc(), locator)
	if err != nil {
		return util.LogSimpleErr(logContext, fmt.Sprintf("Could not load EO item from `%s`: ", locator), err)
	}

	database, err := getDbConnectionFunc(logContext)
	if err != nil {
		return util.LogSimpleErr(logContext, "Could not open database connection: ", err)
	}
	defer database.Close()

	tx, err := database.Begin()
	if err != nil {
		return util.LogSimpleErr(logContext, "Could not begin DB transaction: ", err)
	}
	if err = db.PutItem(tx, item); err != nil {
		tx.Rollback()
		return util.LogSimpleErr(logContext, fmt.Sprintf("Could not store item %s: ", item.ID), err)
	}
	if err = tx.Commit(); err != nil {
		return util.LogSimpleErr(logContext, fmt.Sprintf("Could not commit item %s: ", item.ID), err)
	}

	util.LogAudit(logContext, util.LogAuditInput{Actor: util.AppName, Action: "ingest", Actee: item.ID, Message: "Stored EO item from " + locator, Severity: util.INFO})
	_, err = fmt.Fprintf(stdout, "Stored %s\n", item.ID)
	return err
}
