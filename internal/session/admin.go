package session

import (
	"net/http"

	"tailscale.com/tsweb"

	"github.com/banshee-data/formcheck/internal/httputil"
)

// AttachAdminRoutes attaches session debugging endpoints to the given HTTP
// mux served at /debug/. These routes are accessible only over
// localhost/via Tailscale and are not publicly accessible.
func (r *Registry) AttachAdminRoutes(mux *http.ServeMux) {
	debug := tsweb.Debugger(mux)

	debug.KVFunc("sessions held", func() any { return r.Len() })

	debug.HandleFunc("sessions", "live exercise sessions as JSON", func(w http.ResponseWriter, req *http.Request) {
		httputil.WriteJSONOK(w, r.List())
	})
}
