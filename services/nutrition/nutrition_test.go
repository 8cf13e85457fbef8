package nutrition

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	testCases := []struct {
		name  string
		kcal  float64
		found bool
	}{
		{name: "banana", kcal: 89, found: true},
		{name: "Bananas", kcal: 89, found: true},
		{name: "ripe banana", kcal: 89, found: true},
		{name: "olive oil", kcal: 884, found: true},
		{name: "dragonfruit", found: false},
	}
	for _, test := range testCases {
		facts, ok := Lookup(test.name)
		require.Equal(t, test.found, ok, test.name)
		if test.found {
			require.Equal(t, test.kcal, facts.Kcal, test.name)
		}
	}
}

func TestFdcSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/foods/search", r.URL.Path)
		require.Equal(t, "demo-key", r.URL.Query().Get("api_key"))
		require.Equal(t, "quinoa", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"foods": [{
				"description": "Quinoa, uncooked",
				"dataType": "SR Legacy",
				"foodNutrients": [
					{"nutrientName": "Energy", "unitName": "KCAL", "value": 368},
					{"nutrientName": "Protein", "unitName": "G", "value": 14.1},
					{"nutrientName": "Total lipid (fat)", "unitName": "G", "value": 6.1},
					{"nutrientName": "Carbohydrate, by difference", "unitName": "G", "value": 64.2}
				]
			}]
		}`)
	}))
	defer server.Close()

	client := NewFdcClient(FdcClientOptions{BaseUrl: server.URL, ApiKey: "demo-key"})
	results, err := client.Search(context.Background(), "quinoa", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Quinoa, uncooked", results[0].Description)
	require.Equal(t, Facts{Kcal: 368, Carbs: 64.2, Fat: 6.1, Protein: 14.1}, results[0].Facts)
}
