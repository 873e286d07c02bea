package hc

import (
	"net/http"
	"time"

	"marketkeys/handler/render"
	"marketkeys/worker/authflags"
	"marketkeys/worker/downvote"
	"marketkeys/worker/isolation"
	"marketkeys/worker/marketkey"
	"marketkeys/worker/unban"

	"github.com/fox-one/pkg/property"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

var checkpointKeys = []string{
	marketkey.CheckpointKey,
	downvote.CheckpointKey,
	authflags.CheckpointKey,
	isolation.CheckpointKey,
	unban.CheckpointKey,
}

// Handle handle hc request
func Handle(ver string, propertyStr property.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, propertyStr))
	return r
}

func handle(version string, propertyStr property.Store) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		checkpoints := render.H{}
		for _, key := range checkpointKeys {
			v, err := propertyStr.Get(r.Context(), key)
			if err != nil {
				continue
			}

			checkpoints[key] = v.Time()
		}

		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":      uptime.String(),
			"version":     version,
			"checkpoints": checkpoints,
		})
	}
}
