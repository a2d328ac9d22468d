// ABOUTME: Tests for notify payload routing and row-to-model conversion.
// ABOUTME: Pure decode tests; live LISTEN paths need a real server.

package postgres

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/scraps/internal/models"
)

func TestNotifyHeaderFullPayload(t *testing.T) {
	id := uuid.New()
	payload := `{"id":"` + id.String() + `","user_id":"user-1","type":"note","created_at":"2025-08-30T12:00:00.123456+00:00","content":"hi"}`

	var header notifyHeader
	require.NoError(t, json.Unmarshal([]byte(payload), &header))
	assert.Equal(t, "user-1", header.UserID)
	assert.Equal(t, "note", header.Type)

	var scrap models.Scrap
	require.NoError(t, json.Unmarshal([]byte(payload), &scrap))
	assert.Equal(t, id, scrap.ID)
	require.NotNil(t, scrap.Note)
	assert.Equal(t, "hi", scrap.Note.Content)
}

func TestNotifyHeaderSlimPayload(t *testing.T) {
	payload := `{"id":"` + uuid.NewString() + `","user_id":"user-1"}`

	var header notifyHeader
	require.NoError(t, json.Unmarshal([]byte(payload), &header))
	assert.Empty(t, header.Type, "slim payload signals a refetch")
}

func TestScrapRowToModel(t *testing.T) {
	title := "Example"
	rating := "4.2"
	url := "https://example.com"
	row := scrapRow{
		ID:         uuid.New(),
		UserID:     "user-1",
		Type:       "link",
		URL:        &url,
		MetaTitle:  &title,
		MetaRating: &rating,
		MetaTags:   []string{"go"},
	}

	s := row.toModel()
	require.NotNil(t, s.Link)
	assert.Equal(t, url, s.Link.URL)
	require.NotNil(t, s.Link.Meta)
	assert.Equal(t, "Example", s.Link.Meta.Title)
	assert.Nil(t, s.Note)
	assert.Nil(t, s.Code)
}

func TestScrapRowUnknownTypeHasNoPayload(t *testing.T) {
	row := scrapRow{ID: uuid.New(), UserID: "u", Type: "gif"}
	s := row.toModel()
	assert.Nil(t, s.Note)
	assert.Nil(t, s.Image)
	assert.Nil(t, s.Link)
	assert.Nil(t, s.Code)
}
