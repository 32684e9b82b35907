package record_event

import (
	"context"
	"encoding/json"
	"net/http"
	"nexuslink/internal/domain/models"
	"nexuslink/internal/http/dto"
	"nexuslink/internal/http/httputils"
	"nexuslink/internal/services/recorder"
)

const maxBodySize = 64 << 10

type ServiceRecorder interface {
	Record(ctx context.Context, params recorder.RecordParams) (models.Event, error)
}

type Counter interface {
	EventRecorded(eventType string)
}

// HandlerRecordEvent пишет событие от имени текущего анонимного пользователя
func HandlerRecordEvent(svc ServiceRecorder, counter Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.RecordEventRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
			httputils.WriteJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		event, err := svc.Record(r.Context(), recorder.RecordParams{
			UserID:    httputils.UserID(r.Context()),
			LinkID:    req.LinkID,
			EventType: req.EventType,
			Payload:   req.Payload,
		})
		if err != nil {
			httputils.WriteJSONError(w, httputils.StatusFromError(err), httputils.PublicMessage(err))
			return
		}

		counter.EventRecorded(event.EventType)
		httputils.WriteJSONResponse(w, http.StatusCreated, dto.EventResponseFromDomain(event))
	}
}
