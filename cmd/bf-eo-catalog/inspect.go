package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/bf-eo-catalog/model"
	"github.com/venicegeo/bf-eo-catalog/stac"
	"github.com/venicegeo/bf-eo-catalog/util"
	cli "gopkg.in/urfave/cli.v1"
)

var newSourceFunc = func() eo.Source { return stac.NewLoader() }

func locatorArg(c *cli.Context) (string, error) {
	locator := c.Args().First()
	if locator == "" {
		return "", errors.New("Missing required argument <locator>")
	}
	return locator, nil
}

func inspectAction(c *cli.Context) error {
	logContext := &util.BasicLogContext{}
	locator, err := locatorArg(c)
	if err != nil {
		return err
	}

	item, err := eo.LoadItem(context.Background(), newSourceFunc(), locator)
	if err != nil {
		return util.LogSimpleErr(logContext, fmt.Sprintf("Could not load EO item from `%s`: ", locator), err)
	}

	if c.Bool("summary") {
		result, err := model.NewEOSceneResult(item)
		if err != nil {
			return err
		}
		feature, err := result.GeoJSONFeature()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, feature.String())
		return err
	}

	data, err := json.MarshalIndent(item.ToDocument(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}
