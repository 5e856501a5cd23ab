// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/eventdash/internal/app/system/backend"
	"github.com/dalemusser/eventdash/internal/app/system/screens"
	"github.com/prometheus/client_golang/prometheus"
)

// DBDeps holds back-end dependencies for the app. eventdash keeps no
// database of its own: the events API owns every record.
type DBDeps struct {
	API     *backend.Client
	Screens *screens.Registry
	Metrics *prometheus.Registry
}
