package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watchlist/backend/internal/domain/shared"
)

func TestYearValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    YearValue
		wantErr bool
	}{
		{name: "string", body: `{"year":"2021"}`, want: "2021"},
		{name: "number", body: `{"year":2021}`, want: "2021"},
		{name: "padded string", body: `{"year":" 1999 "}`, want: "1999"},
		{name: "fraction kept as text", body: `{"year":2021.5}`, want: "2021.5"},
		{name: "null", body: `{"year":null}`, want: ""},
		{name: "bool rejected", body: `{"year":true}`, wantErr: true},
		{name: "object rejected", body: `{"year":{}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req AddMovieRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.Year)
		})
	}
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(shared.KindConflict))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(shared.KindNotFound))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(shared.KindStorageFault))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("SOMETHING_ELSE"))
}

func TestResponses_Marshal(t *testing.T) {
	b, err := json.Marshal(NewMessageResponse(MsgAdded))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Movie added successfully"}`, string(b))

	b, err = json.Marshal(NewResultResponse([]string{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":[]}`, string(b))
}
