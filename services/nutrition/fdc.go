package nutrition

import (
	"context"
	"fmt"
	"time"

	"recipevault/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

// FdcClient queries the USDA FoodData Central search API for foods that
// are missing from the local table.
type FdcClient struct {
	Http   *resty.Client
	apiKey string
}

type FdcClientOptions struct {
	// BaseUrl overrides the production endpoint, used by tests.
	BaseUrl string
	ApiKey  string
}

func NewFdcClient(opts FdcClientOptions) *FdcClient {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://api.nal.usda.gov/fdc"
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(time.Second * 15)

	telemetry.InstrumentResty(client, "nutrition/fdc")

	return &FdcClient{Http: client, apiKey: opts.ApiKey}
}

type SearchResult struct {
	Description string
	DataType    string
	Facts       Facts
}

type fdcNutrient struct {
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

type fdcFood struct {
	Description   string        `json:"description"`
	DataType      string        `json:"dataType"`
	FoodNutrients []fdcNutrient `json:"foodNutrients"`
}

type fdcSearchResponse struct {
	Foods []fdcFood `json:"foods"`
}

// Search returns candidate foods with their per-100g macros, best
// matches first per the API's own relevance order.
func (c *FdcClient) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	var out fdcSearchResponse
	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":  c.apiKey,
			"query":    query,
			"pageSize": fmt.Sprint(limit),
			"dataType": "Foundation,SR Legacy",
		}).
		SetResult(&out).
		Get("/v1/foods/search")
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("fdc: unexpected status %d", res.StatusCode())
	}

	results := make([]SearchResult, 0, len(out.Foods))
	for _, food := range out.Foods {
		results = append(results, SearchResult{
			Description: food.Description,
			DataType:    food.DataType,
			Facts:       factsFromNutrients(food.FoodNutrients),
		})
	}
	return results, nil
}

func factsFromNutrients(nutrients []fdcNutrient) Facts {
	var facts Facts
	for _, n := range nutrients {
		switch n.NutrientName {
		case "Energy":
			if n.UnitName == "KCAL" {
				facts.Kcal = n.Value
			}
		case "Carbohydrate, by difference":
			facts.Carbs = n.Value
		case "Total lipid (fat)":
			facts.Fat = n.Value
		case "Protein":
			facts.Protein = n.Value
		}
	}
	return facts
}
