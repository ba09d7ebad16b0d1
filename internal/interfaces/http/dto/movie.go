package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AddMovieRequest is the body of POST /add.
// The title limit applies after trimming, matching what is stored.
// Year range and poster shape are checked by the client only.
type AddMovieRequest struct {
	Title   string    `json:"title" binding:"required,notblank,trimmax=40" example:"Dune"`
	Year    YearValue `json:"year" binding:"required,notblank" swaggertype:"string" example:"2021"`
	Poster  string    `json:"poster" example:"https://example.com/dune.jpg"`
	Watched bool      `json:"watched" example:"false"`
}

// YearValue accepts a year sent either as a JSON string or a JSON number
// and keeps it as text, e.g. 2021 and "2021" both become "2021".
type YearValue string

// UnmarshalJSON implements json.Unmarshaler
func (y *YearValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = YearValue(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("year must be a string or a number: %w", err)
	}
	*y = YearValue(n.String())
	return nil
}

// String returns the year text
func (y YearValue) String() string {
	return string(y)
}
