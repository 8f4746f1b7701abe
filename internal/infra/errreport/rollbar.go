package errreport

import (
	"log"
	"net/http"

	"github.com/rollbar/rollbar-go"
)

// Reporter forwards unexpected errors to Rollbar. Without a token it only logs.
type Reporter struct {
	enabled bool
}

func NewRollbarReporter(token, environment, host string) *Reporter {
	if token == "" {
		rollbar.SetEnabled(false)
		return &Reporter{}
	}

	rollbar.SetToken(token)
	rollbar.SetEnvironment(environment)
	rollbar.SetServerHost(host)
	rollbar.SetEnabled(true)
	return &Reporter{enabled: true}
}

func (r *Reporter) ReportRequest(req *http.Request, err error) {
	if r == nil || err == nil {
		return
	}
	log.Printf("[error] %s %s: %v", req.Method, req.URL.Path, err)
	if r.enabled {
		rollbar.RequestError(rollbar.ERR, req, err)
	}
}

func (r *Reporter) Report(err error, extras map[string]interface{}) {
	if r == nil || err == nil {
		return
	}
	log.Printf("[error] %v", err)
	if r.enabled {
		rollbar.Error(err, extras)
	}
}

func (r *Reporter) Close() {
	if r != nil && r.enabled {
		rollbar.Close()
	}
}
