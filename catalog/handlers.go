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

package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-eo-catalog/catalog/db"
	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/bf-eo-catalog/util"
)

const maxDocumentBytes = 10 << 20

func newContext(connectionProvider db.ConnectionProvider) (*Context, error) {
	database, err := connectionProvider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}
	return &Context{DB: database}, nil
}

// beginTx starts a transaction, answering 500 on failure
func beginTx(ctx *Context, w http.ResponseWriter, r *http.Request) (*sql.Tx, bool) {
	tx, err := ctx.DB.Begin()
	if err != nil {
		message := fmt.Sprintf("Could not begin DB transaction: %v", err)
		util.LogSimpleErr(ctx, message, err)
		util.HTTPError(r, w, ctx, message, http.StatusInternalServerError)
		return nil, false
	}
	return tx, true
}

// lookupError answers a failed item lookup: 404 for unknown items, 400 for
// stored documents that no longer derive, 500 otherwise
func lookupError(ctx *Context, w http.ResponseWriter, r *http.Request, id string, err error) {
	var schemaErr *eo.SchemaError
	switch {
	case err == sql.ErrNoRows:
		message := fmt.Sprintf("Item not found: %s", id)
		util.LogInfo(ctx, message)
		util.HTTPError(r, w, ctx, message, http.StatusNotFound)
	case errors.As(err, &schemaErr):
		message := fmt.Sprintf("Item %s is not a valid EO item: %v", id, err)
		util.LogInfo(ctx, message)
		util.HTTPError(r, w, ctx, message, http.StatusBadRequest)
	default:
		message := fmt.Sprintf("Server error searching for item: %v", err)
		util.LogSimpleErr(ctx, message, err)
		util.HTTPError(r, w, ctx, message, http.StatusInternalServerError)
	}
}

func writeJSON(ctx *Context, w http.ResponseWriter, r *http.Request, status int, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		message := fmt.Sprintf("Error converting response to JSON: %v", err)
		util.LogSimpleErr(ctx, message, err)
		util.HTTPError(r, w, ctx, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

// ItemsHandler is a handler for /eo/items
// @Title eoItemsHandler
// @Description POST ingests a catalog item as an EO item; GET lists EO item summaries
// @Accept  json
// @Param   collection      query   string  false        "Only list items of this collection"
// @Success 201 {object}  eo.Item
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /eo/items [post,get]
type ItemsHandler struct {
	Context Context
}

// NewItemsHandler creates a new handler using the given DB
func NewItemsHandler(connectionProvider db.ConnectionProvider) (*ItemsHandler, error) {
	ctx, err := newContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &ItemsHandler{Context: *ctx}, nil
}

// ServeHTTP implements the http.Handler interface for the ItemsHandler type
func (h ItemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.ingest(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		util.HTTPError(r, w, &h.Context, fmt.Sprintf("Method %s not allowed", r.Method), http.StatusMethodNotAllowed)
	}
}

func (h ItemsHandler) ingest(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		message := fmt.Sprintf("Could not read request body: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}
	doc := map[string]interface{}{}
	if err = json.Unmarshal(body, &doc); err != nil {
		message := fmt.Sprintf("Request body is not a JSON object: %v", err)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	item, err := eo.ItemFromDocument(doc)
	if err != nil {
		itemsRejected.Inc()
		message := fmt.Sprintf("Item is not a valid EO item: %v", err)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	tx, ok := beginTx(&h.Context, w, r)
	if !ok {
		return
	}
	if err = db.PutItem(tx, item); err != nil {
		message := fmt.Sprintf("Could not store item %s: %v", item.ID, err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		tx.Rollback()
		return
	}
	if err = tx.Commit(); err != nil {
		message := fmt.Sprintf("Could not commit item %s: %v", item.ID, err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	itemsStored.Inc()
	util.LogAudit(&h.Context, util.LogAuditInput{Actor: r.RemoteAddr, Action: "ingest", Actee: item.ID, Message: "Stored EO item", Severity: util.INFO})
	writeJSON(&h.Context, w, r, http.StatusCreated, item.ToDocument())
}

func (h ItemsHandler) list(w http.ResponseWriter, r *http.Request) {
	tx, ok := beginTx(&h.Context, w, r)
	if !ok {
		return
	}
	defer tx.Commit()

	multiResult, err := listSummaries(tx, r.FormValue("collection"))
	if err != nil {
		lookupError(&h.Context, w, r, r.FormValue("collection"), err)
		return
	}

	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write([]byte(featureCollection.String()))
}

// ItemHandler is a handler for /eo/items/{id}
// @Title eoItemHandler
// @Description GET returns the EO item document; DELETE removes the item
// @Accept  plain
// @Param   id            path   string  true        "The ID of the requested item"
// @Success 200 {object}  eo.Item
// @Success 204
// @Failure 404 {object}  string
// @Router /eo/items/{id} [get,delete]
type ItemHandler struct {
	Context Context
}

// NewItemHandler creates a new handler using the given DB
func NewItemHandler(connectionProvider db.ConnectionProvider) (*ItemHandler, error) {
	ctx, err := newContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &ItemHandler{Context: *ctx}, nil
}

func (h ItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	itemID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No item ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, ok := beginTx(&h.Context, w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodDelete:
		if err := db.DeleteItem(tx, itemID); err != nil {
			tx.Rollback()
			lookupError(&h.Context, w, r, itemID, err)
			return
		}
		if err := tx.Commit(); err != nil {
			message := fmt.Sprintf("Could not commit deletion of %s: %v", itemID, err)
			util.LogSimpleErr(&h.Context, message, err)
			util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
			return
		}
		util.LogAudit(&h.Context, util.LogAuditInput{Actor: r.RemoteAddr, Action: "delete", Actee: itemID, Message: "Deleted EO item", Severity: util.INFO})
		w.WriteHeader(http.StatusNoContent)
	default:
		defer tx.Commit()
		item, err := db.GetItemByID(tx, itemID)
		if err != nil {
			lookupError(&h.Context, w, r, itemID, err)
			return
		}
		writeJSON(&h.Context, w, r, http.StatusOK, item.ToDocument())
	}
}

// SummaryHandler is a handler for /eo/items/{id}/summary
// @Title eoSummaryHandler
// @Description returns a GeoJSON scene summary of an EO item
// @Accept  plain
// @Param   id            path   string  true        "The ID of the requested item"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /eo/items/{id}/summary [get]
type SummaryHandler struct {
	Context Context
}

// NewSummaryHandler creates a new handler using the given DB
func NewSummaryHandler(connectionProvider db.ConnectionProvider) (*SummaryHandler, error) {
	ctx, err := newContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &SummaryHandler{Context: *ctx}, nil
}

func (h SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	itemID, ok := mux.Vars(r)["id"]
	if !ok {
		message := "No item ID found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, ok := beginTx(&h.Context, w, r)
	if !ok {
		return
	}
	defer tx.Commit()

	summary, err := getSummary(tx, itemID)
	if err != nil {
		lookupError(&h.Context, w, r, itemID, err)
		return
	}

	feature, err := summary.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting summary to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write([]byte(feature.String()))
}

// AssetBandsHandler is a handler for /eo/items/{id}/assets/{key}/bands
// @Title eoAssetBandsHandler
// @Description returns the bands held by one EO asset of an item
// @Accept  plain
// @Param   id            path   string  true        "The ID of the requested item"
// @Param   key           path   string  true        "The asset key"
// @Success 200 {object}  []eo.Band
// @Failure 400 {object}  string
// @Failure 404 {object}  string
// @Router /eo/items/{id}/assets/{key}/bands [get]
type AssetBandsHandler struct {
	Context Context
}

// NewAssetBandsHandler creates a new handler using the given DB
func NewAssetBandsHandler(connectionProvider db.ConnectionProvider) (*AssetBandsHandler, error) {
	ctx, err := newContext(connectionProvider)
	if err != nil {
		return nil, err
	}
	return &AssetBandsHandler{Context: *ctx}, nil
}

func (h AssetBandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	itemID, key := vars["id"], vars["key"]
	if itemID == "" || key == "" {
		message := "No item ID or asset key found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	tx, ok := beginTx(&h.Context, w, r)
	if !ok {
		return
	}
	defer tx.Commit()

	bands, err := getAssetBands(tx, itemID, key)
	switch {
	case errors.Is(err, errAssetNotFound):
		util.HTTPError(r, w, &h.Context, fmt.Sprintf("Item %s has no asset '%s'", itemID, key), http.StatusNotFound)
		return
	case errors.Is(err, errNotEOAsset):
		util.HTTPError(r, w, &h.Context, fmt.Sprintf("Asset '%s' of item %s references no bands", key, itemID), http.StatusBadRequest)
		return
	case err != nil:
		lookupError(&h.Context, w, r, itemID, err)
		return
	}

	writeJSON(&h.Context, w, r, http.StatusOK, bandsToDocuments(bands))
}

// BandHandler is a handler for /eo/bands/{commonName}
// @Title eoBandHandler
// @Description describes a band common name and its wavelength range
// @Accept  plain
// @Param   commonName    path   string  true        "The band common name"
// @Success 200 {object}  string
// @Failure 404 {object}  string
// @Router /eo/bands/{commonName} [get]
type BandHandler struct {
	Context Context
}

// NewBandHandler creates a new handler; it needs no database
func NewBandHandler() *BandHandler {
	return &BandHandler{}
}

func (h BandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	commonName := mux.Vars(r)["commonName"]
	info, ok := bandInfo(commonName)
	if !ok {
		message := fmt.Sprintf("Unknown band common name: %s", commonName)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}
	writeJSON(&h.Context, w, r, http.StatusOK, info)
}
