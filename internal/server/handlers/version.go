package handlers

import (
	"encoding/json"
	"net/http"
)

// VersionInfo is the build identity reported on /version.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// Version serves the version endpoint.
type Version struct {
	info VersionInfo
}

// NewVersion returns the version handler.
func NewVersion(info VersionInfo) *Version {
	return &Version{info: info}
}

// Handle handles GET /version.
func (v *Version) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v.info)
}
