package http

import (
	"net/http"

	"github.com/MKhiriev/note-hub/internal/utils"
	"github.com/MKhiriev/note-hub/models"
)

type versionResponse struct {
	Version string              `json:"version"`
	Build   models.AppBuildInfo `json:"build"`
}

func (h *Handler) getAppVersion(w http.ResponseWriter, r *http.Request) {
	_, _ = utils.WriteJSON(w, versionResponse{
		Version: h.appInfo.GetAppVersion(r.Context()),
		Build:   h.appInfo.BuildInfo(),
	}, http.StatusOK)
}
