package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue_UnmarshalUpstreamShape(t *testing.T) {
	payload := `{
		"14": ["Øl", 600],
		"3": ["Fritfredag", 1200],
		"7": ["Kaffe", 0]
	}`

	var c Catalogue
	require.NoError(t, json.Unmarshal([]byte(payload), &c))

	require.Equal(t, 3, c.Len())
	// Ordered by id for a stable catalogue across refreshes.
	assert.Equal(t, []Product{
		{ID: 3, Name: "Fritfredag", Price: 1200},
		{ID: 7, Name: "Kaffe", Price: 0},
		{ID: 14, Name: "Øl", Price: 600},
	}, c.Products)

	p, ok := c.Find(14)
	require.True(t, ok)
	assert.Equal(t, "Øl", p.Name)

	_, ok = c.Find(999)
	assert.False(t, ok)
}

func TestCatalogue_UnmarshalRejectsBadID(t *testing.T) {
	var c Catalogue
	err := json.Unmarshal([]byte(`{"abc": ["X", 100]}`), &c)
	assert.Error(t, err)
}

func TestCatalogue_UnmarshalRejectsBadPrice(t *testing.T) {
	var c Catalogue
	err := json.Unmarshal([]byte(`{"3": ["X", "not-a-price"]}`), &c)
	assert.Error(t, err)
}

func TestAccessStatus_String(t *testing.T) {
	assert.Equal(t, "unavailable", AccessUnavailable.String())
	assert.Equal(t, "service_only", AccessServiceOnly.String())
	assert.Equal(t, "api_available", AccessAPIAvailable.String())
}

func TestAccessStatus_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(AccessServiceOnly)
	require.NoError(t, err)
	assert.Equal(t, `"service_only"`, string(data))
}
