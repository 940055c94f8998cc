// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/church611/shepherdview/internal/app/store/memdb"
)

// DBDeps holds database/back-end dependencies for the app.
// ShepherdView keeps the whole network in a single in-memory store;
// extend this struct if a durable backend is added.
type DBDeps struct {
	Store *memdb.DB
}
