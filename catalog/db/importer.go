package db

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/venicegeo/bf-eo-catalog/eo"
	"github.com/venicegeo/bf-eo-catalog/util"
)

// BeginIngestJobMessage is sent on a channel to start an ingest job.
const BeginIngestJobMessage = "start"

// AbortIngestJobMessage is sent on a channel to stop an in-progress job.
const AbortIngestJobMessage = "stop"

type jobStats struct {
	NumberAddedOrUpdated int
	NumberSkipped        int
	NumberError          int
	StartTime            time.Time
	EndTime              time.Time
	CanceledByUser       bool
}

func (stats *jobStats) String() string {
	return fmt.Sprintf(`
		Start:	%v
		End:	%v
		Canceled: %v
		#Added:		%v
		#Skipped:	%v
		#Error:		%v
		`,
		stats.StartTime.Format("Mon Jan _2 15:04:05 2006"),
		stats.EndTime.Format("Mon Jan _2 15:04:05 2006"),
		stats.CanceledByUser,
		stats.NumberAddedOrUpdated,
		stats.NumberSkipped,
		stats.NumberError)
}

// Importer manages the state for an ingest job. The job reads an item list
// (one item locator per line) and stores every item that derives as an EO item.
type Importer struct {
	listURL        string
	listIsGzip     bool
	dbConnProvider ConnectionProvider
	source         eo.Source
	Context        util.LogContext
}

// NewImporter intializes a new importer.
func NewImporter(
	url string,
	useGzip bool,
	dbConnProvider ConnectionProvider,
	source eo.Source) *Importer {
	return &Importer{
		listURL:        url,
		listIsGzip:     useGzip,
		dbConnProvider: dbConnProvider,
		source:         source,
		Context:        &util.BasicLogContext{},
	}
}

// Import opens the item list and the database and runs the ingest.
func (imp *Importer) Import(ctx context.Context, messageChan <-chan string) (string, error) {
	var mainReader io.Reader
	sourceReader, err := openReader(ctx, imp.listURL)
	if err != nil {
		return "", util.LogSimpleErr(imp.Context, "Could not open the item list: ", err)
	}
	defer sourceReader.Close()
	mainReader = sourceReader

	//If the user has indicated that the list uses gzip, then
	//wrap the the reader.
	if imp.listIsGzip {
		archiveReader, zipErr := gzip.NewReader(mainReader)
		if zipErr != nil {
			return "", util.LogSimpleErr(imp.Context, "Error opening gzip archive: ", zipErr)
		}
		defer archiveReader.Close()
		mainReader = archiveReader
	}

	//Database connection is opened right before the ingest, and closed
	//immediately after.
	database, err := imp.dbConnProvider(imp.Context)
	if err != nil {
		return "", util.LogSimpleErr(imp.Context, "Could not open database connection: ", err)
	}
	defer database.Close()

	return imp.Ingest(ctx, mainReader, database, messageChan), nil
}

// Ingest reads item locators from the stream and inserts/updates the items.
// Items that are not EO items are skipped; load and storage failures are
// counted as errors. Each item is stored in its own transaction.
func (imp *Importer) Ingest(ctx context.Context, reader io.Reader, database *sql.DB, cancelChan <-chan string) string {
	var stats jobStats
	stats.StartTime = time.Now()

	scanner := bufio.NewScanner(reader)
LineLoop:
	for scanner.Scan() {
		//Check whether the user has requested cancelation.
		if abort := drainMessages(cancelChan); abort || ctx.Err() != nil {
			util.LogInfo(imp.Context, "Ingest job canceled by user.")
			stats.CanceledByUser = true
			break LineLoop
		}

		locator := strings.TrimSpace(scanner.Text())
		if locator == "" || strings.HasPrefix(locator, "#") {
			continue
		}

		item, err := eo.LoadItem(ctx, imp.source, locator)
		var schemaErr *eo.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			stats.NumberSkipped++
			util.LogInfo(imp.Context, fmt.Sprintf("Skipping `%s`: %v", locator, err))
			continue
		case err != nil:
			stats.NumberError++
			util.LogSimpleErr(imp.Context, fmt.Sprintf("Error loading `%s`: ", locator), err)
			continue
		}

		if err = storeItem(database, item); err != nil {
			stats.NumberError++
			util.LogSimpleErr(imp.Context, fmt.Sprintf("Error inserting item `%s` into db: ", item.ID), err)
			continue
		}
		stats.NumberAddedOrUpdated++
	}
	if err := scanner.Err(); err != nil {
		stats.NumberError++
		util.LogSimpleErr(imp.Context, "Error reading item list: ", err)
	}

	stats.EndTime = time.Now()
	util.LogInfo(imp.Context, fmt.Sprintf("Ingest Complete: %v", stats.String()))
	util.LogInfo(imp.Context, fmt.Sprintf("Ingest took %s", stats.EndTime.Sub(stats.StartTime)))

	return stats.String()
}

func storeItem(database *sql.DB, item *eo.Item) error {
	tx, err := database.Begin()
	if err != nil {
		return err
	}
	if err = PutItem(tx, item); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// drainMessages reads all the messages from the channel looking for
// AbortIngestJobMessage. It does not block.
func drainMessages(messageChan <-chan string) (abort bool) {
	for {
		select {
		case msg, ok := <-messageChan:
			if !ok {
				return abort
			}
			if msg == AbortIngestJobMessage {
				abort = true
			}
		default:
			return abort
		}
	}
}

func openReader(ctx context.Context, listURL string) (io.ReadCloser, error) {
	//If this looks like a url then try to download it.
	if strings.HasPrefix(listURL, "http://") || strings.HasPrefix(listURL, "https://") {
		request, err := http.NewRequest("GET", listURL, nil)
		if err != nil {
			return nil, err
		}
		archiveResponse, netErr := util.HTTPClient().Do(request.WithContext(ctx))
		if netErr != nil {
			return nil, netErr
		}
		defer archiveResponse.Body.Close()
		if archiveResponse.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Non-200 response code: %d", archiveResponse.StatusCode)
		}

		//Download the whole body so we don't need to keep the connection open
		bodyData, err := ioutil.ReadAll(archiveResponse.Body)
		if err != nil {
			return nil, err
		}

		return ioutil.NopCloser(bytes.NewBuffer(bodyData)), nil
	}

	//Treat this as a file.
	return os.Open(filepath.Clean(listURL))
}
