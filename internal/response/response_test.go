package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RouqX7/AthleteConnect/internal/utils"
)

func TestWriteMirrorsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Ok(http.StatusOK, "done", "payload").Write(rec))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded Response[string]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.True(t, decoded.Success)
	assert.Equal(t, http.StatusOK, decoded.Status)
	require.NotNil(t, decoded.Data)
	assert.Equal(t, "payload", *decoded.Data)
}

func TestFailOmitsData(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, Fail[string](http.StatusBadRequest, "bad input").Write(rec))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"data"`)
}

func TestFromErrorMapsAppErrorCodes(t *testing.T) {
	notFound := FromError[string](utils.NewNotFoundError("post"), "failed to fetch post")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Contains(t, notFound.Message, "post not found")

	untagged := FromError[string](assert.AnError, "failed to fetch post")
	assert.Equal(t, http.StatusInternalServerError, untagged.Status)
}
