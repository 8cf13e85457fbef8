// Package notion is a client for the subset of the Notion REST API the
// importer needs: database queries, page lifecycle and block children.
package notion

import (
	"context"
	"fmt"
	"time"

	"recipevault/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const apiVersion = "2022-06-28"

type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	// BaseUrl overrides the production API endpoint, used by tests.
	BaseUrl string
	Token   string
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://api.notion.com"
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetAuthToken(opts.Token)
	client.SetHeader("Notion-Version", apiVersion)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "notion/http")

	return &Client{Http: client}
}

type apiError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func checkResponse(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if res.IsSuccess() {
		return nil
	}
	apiErr, ok := res.Error().(*apiError)
	if ok && apiErr.Message != "" {
		return fmt.Errorf("notion: %s (%s)", apiErr.Message, apiErr.Code)
	}
	return fmt.Errorf("notion: unexpected status %d", res.StatusCode())
}

type QueryRequest struct {
	Filter      map[string]any `json:"filter,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size,omitempty"`
}

type QueryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

func (c *Client) QueryDatabase(ctx context.Context, databaseId string, req QueryRequest) (QueryResponse, error) {
	var out QueryResponse
	res, err := c.Http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiError{}).
		Post(fmt.Sprintf("/v1/databases/%s/query", databaseId))
	if err := checkResponse(res, err); err != nil {
		return QueryResponse{}, err
	}
	return out, nil
}

// QueryDatabaseAll follows pagination cursors until the full result set
// has been collected.
func (c *Client) QueryDatabaseAll(ctx context.Context, databaseId string, filter map[string]any) ([]Page, error) {
	var pages []Page
	cursor := ""
	for {
		res, err := c.QueryDatabase(ctx, databaseId, QueryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    100,
		})
		if err != nil {
			return nil, err
		}
		pages = append(pages, res.Results...)
		if !res.HasMore {
			return pages, nil
		}
		cursor = res.NextCursor
	}
}

type CreatePageRequest struct {
	Parent     Parent              `json:"parent"`
	Properties map[string]Property `json:"properties"`
	Cover      *File               `json:"cover,omitempty"`
	Icon       *File               `json:"icon,omitempty"`
	Children   []Block             `json:"children,omitempty"`
}

type Parent struct {
	DatabaseId string `json:"database_id,omitempty"`
	PageId     string `json:"page_id,omitempty"`
}

func (c *Client) CreatePage(ctx context.Context, req CreatePageRequest) (Page, error) {
	var out Page
	res, err := c.Http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiError{}).
		Post("/v1/pages")
	if err := checkResponse(res, err); err != nil {
		return Page{}, err
	}
	return out, nil
}

type UpdatePageRequest struct {
	Properties map[string]Property `json:"properties,omitempty"`
	Archived   *bool               `json:"archived,omitempty"`
	Cover      *File               `json:"cover,omitempty"`
	Icon       *File               `json:"icon,omitempty"`
}

func (c *Client) UpdatePage(ctx context.Context, pageId string, req UpdatePageRequest) (Page, error) {
	var out Page
	res, err := c.Http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&apiError{}).
		Patch(fmt.Sprintf("/v1/pages/%s", pageId))
	if err := checkResponse(res, err); err != nil {
		return Page{}, err
	}
	return out, nil
}

func (c *Client) ArchivePage(ctx context.Context, pageId string) error {
	archived := true
	_, err := c.UpdatePage(ctx, pageId, UpdatePageRequest{Archived: &archived})
	return err
}

func (c *Client) RetrievePage(ctx context.Context, pageId string) (Page, error) {
	var out Page
	res, err := c.Http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiError{}).
		Get(fmt.Sprintf("/v1/pages/%s", pageId))
	if err := checkResponse(res, err); err != nil {
		return Page{}, err
	}
	return out, nil
}
