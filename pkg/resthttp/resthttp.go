package resthttp

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofrs/uuid"
)

const headerKeyRequestID = "X-Request-Id"

var runOnce sync.Once
var restyClient *resty.Client

// Client shared resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request with a fresh request id
func Request(ctx context.Context) *resty.Request {
	return Client().R().
		SetContext(ctx).
		SetHeader(headerKeyRequestID, uuid.Must(uuid.NewV4()).String())
}
