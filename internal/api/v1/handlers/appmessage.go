package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"ulascansenturk/watchface-weather/internal/service"
)

const maxAppMessageBody = 8 << 10

// AppMessageHandler turns inbound AppMessages from the watch into
// appmessage events. The message content is not inspected; any message is a
// request for fresh weather.
type AppMessageHandler struct {
	bus service.TriggerBus
}

func NewAppMessageHandler(bus service.TriggerBus) *AppMessageHandler {
	return &AppMessageHandler{
		bus: bus,
	}
}

func (h *AppMessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/appmessage":
		h.ReceiveAppMessage(w, r)
	default:
		respondWithError(w, http.StatusNotFound, "not found")
	}
}

func (h *AppMessageHandler) ReceiveAppMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.URL.Path != "/appmessage" {
		respondWithError(w, http.StatusNotFound, "not found")
		return
	}

	if r.Body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxAppMessageBody))
	}

	log.Info().Msg("received appmessage")

	if err := h.bus.Publish(service.EventAppMessage); err != nil {
		log.Error().Err(err).Msg("failed to publish appmessage event")
		if errors.Is(err, service.ErrBusClosed) {
			respondWithError(w, http.StatusServiceUnavailable, "shutting down")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to publish event: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusAccepted, AppMessageResponse{
		Status: "accepted",
		Event:  string(service.EventAppMessage),
	})
}
