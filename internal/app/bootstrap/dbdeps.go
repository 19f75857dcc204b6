// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/edufront/edufront/internal/app/api"
	"github.com/edufront/edufront/internal/app/courseedit"
	"github.com/edufront/edufront/internal/app/courselist"
)

// DBDeps holds back-end dependencies for the app. This front-end owns
// no database; its "backends" are the course API and the auth API,
// plus the per-session controller registries built on top of them.
type DBDeps struct {
	API  *api.Client
	Auth *api.AuthClient

	Lists *courselist.Registry
	Edits *courseedit.Registry
}
