// Package contracts holds the small interfaces the application shell wires
// handlers through.
package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every domain's HTTP handler; the application
// mounts each one onto the shared router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
