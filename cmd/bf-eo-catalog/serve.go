// Copyright 2018, RadiantBlue Technologies, Inc.
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

package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-eo-catalog/catalog"
	"github.com/venicegeo/bf-eo-catalog/util"
	cli "gopkg.in/urfave/cli.v1"
)

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.Handle("/metrics", catalog.MetricsHandler())
	router.Handle("/eo/bands/{commonName}", catalog.Instrument("bands", catalog.NewBandHandler())).Methods("GET")

	if itemsHandler, err := catalog.NewItemsHandler(getDbConnectionFunc); err == nil {
		router.Handle("/eo/items", catalog.Instrument("items", itemsHandler)).Methods("GET", "POST")
	} else {
		return nil, err
	}

	if itemHandler, err := catalog.NewItemHandler(getDbConnectionFunc); err == nil {
		router.Handle("/eo/items/{id}", catalog.Instrument("item", itemHandler)).Methods("GET", "DELETE")
	} else {
		return nil, err
	}

	if summaryHandler, err := catalog.NewSummaryHandler(getDbConnectionFunc); err == nil {
		router.Handle("/eo/items/{id}/summary", catalog.Instrument("summary", summaryHandler)).Methods("GET")
	} else {
		return nil, err
	}

	if assetBandsHandler, err := catalog.NewAssetBandsHandler(getDbConnectionFunc); err == nil {
		router.Handle("/eo/items/{id}/assets/{key}/bands", catalog.Instrument("asset_bands", assetBandsHandler)).Methods("GET")
	} else {
		return nil, err
	}

	util.LogInfo(ctx, "Catalog routes registered")
	return router, nil
}

func serveAction(*cli.Context) error {
	logContext := &(util.BasicLogContext{})

	portStr := util.GetPortStr()

	router, err := createRouter(logContext)
	if err != nil {
		return util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
	util.LogInfo(logContext, fmt.Sprintf("Listening on %s", portStr))
	launchServerFunc(portStr, router)
	return nil
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
