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

package util

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppName is the application name stamped on every log line
const AppName = "bf-eo-catalog"

// Severity is an RFC 5424 severity keyword
type Severity string

// Severities used by the logging functions
const (
	DEBUG   Severity = "DEBUG"
	INFO    Severity = "INFO"
	NOTICE  Severity = "NOTICE"
	WARNING Severity = "WARNING"
	ERROR   Severity = "ERROR"
	ALERT   Severity = "ALERT"
)

var severityCodes = map[Severity]int{
	DEBUG:   7,
	INFO:    6,
	NOTICE:  5,
	WARNING: 4,
	ERROR:   3,
	ALERT:   1,
}

// LogContext is the interface that every logging caller provides so log lines
// can be attributed to an application and a session
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a LogContext for callers with no session of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns the application name
func (c *BasicLogContext) AppName() string {
	return AppName
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

var logger = log.New(os.Stderr, "", 0)

// SetLogOutput redirects all log output; it is used by tests to capture lines
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

// PsuUUID returns a new random UUID string
func PsuUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func hostname() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "-"
	}
	return host
}

func appName(ctx LogContext) string {
	if ctx == nil || ctx.AppName() == "" {
		return AppName
	}
	return ctx.AppName()
}

func sessionID(ctx LogContext) string {
	if ctx == nil || ctx.SessionID() == "" {
		return "-"
	}
	return ctx.SessionID()
}

// logMessage writes one RFC 5424-shaped line:
// <PRI>1 TIMESTAMP HOST APP PID MSGID [session] MESSAGE
func logMessage(ctx LogContext, severity Severity, msgID string, message string) {
	pri := 8 + severityCodes[severity] // facility 1 (user-level)
	message = strings.Replace(message, "\n", " ", -1)
	logger.Printf("<%d>1 %s %s %s %d %s [session id=%q] %s",
		pri, time.Now().UTC().Format(time.RFC3339), hostname(), appName(ctx),
		os.Getpid(), msgID, sessionID(ctx), message)
}

// LogInfo logs an informational message
func LogInfo(ctx LogContext, message string) {
	logMessage(ctx, INFO, "-", message)
}

// LogAlert logs a message that an operator should look at
func LogAlert(ctx LogContext, message string) {
	logMessage(ctx, ALERT, "-", message)
}

// LogSimpleErr logs a message together with its cause and returns an error
// that combines both, for callers that want to propagate what was logged
func LogSimpleErr(ctx LogContext, message string, err error) error {
	if err == nil {
		logMessage(ctx, ERROR, "-", message)
		return fmt.Errorf("%s", message)
	}
	logMessage(ctx, ERROR, "-", message+err.Error())
	return fmt.Errorf("%s%v", message, err)
}

// LogAuditInput describes one auditable action
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit logs an auditable action (who did what to whom)
func LogAudit(ctx LogContext, input LogAuditInput) {
	severity := input.Severity
	if severity == "" {
		severity = INFO
	}
	logMessage(ctx, severity, "audit", fmt.Sprintf("actor=%q action=%q actee=%q %s",
		input.Actor, input.Action, input.Actee, input.Message))
}

// Error is an error carrying both a short message and the raw response or
// document that caused it
type Error struct {
	SimpleMsg string
	Response  string
}

func (e Error) Error() string {
	if e.Response == "" {
		return e.SimpleMsg
	}
	return fmt.Sprintf("%s\n%s", e.SimpleMsg, e.Response)
}

// Log logs the error with an optional prefix and returns it as an error
func (e Error) Log(ctx LogContext, prefix string) error {
	message := e.SimpleMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	logMessage(ctx, ERROR, "-", message)
	return e
}

// HTTPError logs the failure of a request and writes the message back to the
// client with the given status code
func HTTPError(request *http.Request, writer http.ResponseWriter, ctx LogContext, message string, statusCode int) {
	LogAudit(ctx, LogAuditInput{
		Actor:    AppName,
		Action:   fmt.Sprintf("%d response", statusCode),
		Actee:    request.URL.String(),
		Message:  message,
		Severity: WARNING,
	})
	http.Error(writer, message, statusCode)
}
