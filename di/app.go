package di

import (
	"loft/internal/batch"
	"loft/transport/http"
)

// App bundles the long-running pieces of the service: the HTTP server
// and the contract rollover batch.
type App struct {
	HTTP             *http.HTTP
	ContractRollover *batch.ContractRollover
}
