package chem

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all chemistry endpoints onto the given router.
func RegisterRoutes(r chi.Router) {
	r.Get("/molar-mass/{formula}", GetMolarMass)
	r.Post("/run-commands", RunCommands)
}
