package stac

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/venicegeo/bf-eo-catalog/util"
)

// Loader reads item documents from local files or http(s) URLs
type Loader struct {
	Client  *http.Client
	Context util.LogContext
}

// NewLoader creates a Loader using the shared HTTP client configuration
func NewLoader() *Loader {
	return &Loader{
		Client:  util.HTTPClient(),
		Context: &util.BasicLogContext{},
	}
}

func isRemote(locator string) bool {
	u, err := url.Parse(locator)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// ReadDocument reads and decodes the JSON document at the locator
func (l *Loader) ReadDocument(ctx context.Context, locator string) (map[string]interface{}, error) {
	var (
		data []byte
		err  error
	)
	if isRemote(locator) {
		data, err = l.fetch(ctx, locator)
	} else {
		data, err = ioutil.ReadFile(locator)
	}
	if err != nil {
		return nil, util.LogSimpleErr(l.Context, fmt.Sprintf("Failed to read document at `%s`: ", locator), err)
	}

	doc := map[string]interface{}{}
	if err = json.Unmarshal(data, &doc); err != nil {
		plErr := util.Error{SimpleMsg: fmt.Sprintf("Document at `%s` is not a JSON object: %v", locator, err), Response: string(data)}
		return nil, plErr.Log(l.Context, "")
	}
	return doc, nil
}

func (l *Loader) fetch(ctx context.Context, locator string) ([]byte, error) {
	util.LogAudit(l.Context, util.LogAuditInput{Actor: util.AppName, Action: "GET", Actee: locator, Message: "Loading item document", Severity: util.INFO})

	request, err := http.NewRequest("GET", locator, nil)
	if err != nil {
		return nil, err
	}
	request = request.WithContext(ctx)
	request.Header.Set("Accept", "application/geo+json, application/json")

	client := l.Client
	if client == nil {
		client = util.HTTPClient()
	}
	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Non-200 response code: %d", response.StatusCode)
	}
	return ioutil.ReadAll(response.Body)
}

// Load reads the item document at the locator and parses it. The item's Href
// is set to the locator it was read from.
func (l *Loader) Load(ctx context.Context, locator string) (*Item, error) {
	doc, err := l.ReadDocument(ctx, locator)
	if err != nil {
		return nil, err
	}
	item, err := ItemFromDocument(doc)
	if err != nil {
		return nil, err
	}

	item.Href = locator
	if !isRemote(locator) {
		if abs, err := filepath.Abs(locator); err == nil {
			item.Href = abs
		}
	}
	return item, nil
}
