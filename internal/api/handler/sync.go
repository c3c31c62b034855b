package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-reporting-tap/internal/scheduler"
	"github.com/vfg2006/meta-reporting-tap/pkg/apiErrors"
)

// RunSync dispara manualmente uma sincronização de relatórios
func RunSync(service *scheduler.ReportSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunSync")

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de relatórios não disponível", nil)
			return
		}

		service.TriggerManualSync()

		response := map[string]any{
			"message": "Sincronização de relatórios iniciada com sucesso",
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetSyncStatus retorna o status da sincronização de relatórios
func GetSyncStatus(service *scheduler.ReportSyncService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetSyncStatus")

		if service == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de relatórios não disponível", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.GetStatus())
	}
}
