package handler

import (
	"net/http"

	"github.com/templui/userbase/internal/ctxkeys"
)

type databaseInfo struct {
	Driver string `json:"driver"`
	Host   string `json:"host,omitempty"`
	Port   int    `json:"port,omitempty"`
	Name   string `json:"name,omitempty"`
}

type healthResponse struct {
	Status     string       `json:"status"`
	Env        string       `json:"env"`
	Database   databaseInfo `json:"database"`
	CORSOrigin string       `json:"corsOrigin"`
}

// GET /test
func Test(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "server is running", nil)
}

// Health echoes the non-secret configuration.
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	if cfg := ctxkeys.Config(r.Context()); cfg != nil {
		resp.Env = cfg.AppEnv
		resp.Database = databaseInfo{
			Driver: cfg.DBDriver,
			Host:   cfg.DBHost,
			Port:   cfg.DBPort,
			Name:   cfg.DBName,
		}
		resp.CORSOrigin = cfg.CORSOrigin
	}

	writeSuccess(w, http.StatusOK, "healthy", resp)
}
