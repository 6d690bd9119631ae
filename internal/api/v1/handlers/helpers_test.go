package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithErrorUnmappedStatus(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, http.StatusTeapot, "short and stout")

	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Allow"))

	var response ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Errors, 1)
	assert.Equal(t, "INTERNAL_ERROR", response.Errors[0].Code)
	assert.Equal(t, "Internal Server Error", response.Errors[0].Title)
	assert.Equal(t, http.StatusTeapot, response.Errors[0].Status)
	assert.Equal(t, "short and stout", response.Errors[0].Detail)
}
