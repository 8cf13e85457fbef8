package notion

import (
	"context"
	"fmt"
)

type Block struct {
	Object           string         `json:"object,omitempty"`
	Id               string         `json:"id,omitempty"`
	Type             string         `json:"type,omitempty"`
	HasChildren      bool           `json:"has_children,omitempty"`
	Paragraph        *RichTextBlock `json:"paragraph,omitempty"`
	Heading1         *RichTextBlock `json:"heading_1,omitempty"`
	Heading2         *RichTextBlock `json:"heading_2,omitempty"`
	Heading3         *RichTextBlock `json:"heading_3,omitempty"`
	NumberedListItem *RichTextBlock `json:"numbered_list_item,omitempty"`
	BulletedListItem *RichTextBlock `json:"bulleted_list_item,omitempty"`
	ToDo             *RichTextBlock `json:"to_do,omitempty"`
	Divider          *struct{}      `json:"divider,omitempty"`
}

type RichTextBlock struct {
	RichText []RichText `json:"rich_text"`
}

func (b Block) PlainText() string {
	for _, rtb := range []*RichTextBlock{
		b.Paragraph, b.Heading1, b.Heading2, b.Heading3,
		b.NumberedListItem, b.BulletedListItem, b.ToDo,
	} {
		if rtb != nil {
			return plainText(rtb.RichText)
		}
	}
	return ""
}

func NewParagraphBlock(text string) Block {
	return Block{
		Object:    "block",
		Type:      "paragraph",
		Paragraph: &RichTextBlock{RichText: richText(text)},
	}
}

func NewHeading3Block(text string) Block {
	return Block{
		Object:   "block",
		Type:     "heading_3",
		Heading3: &RichTextBlock{RichText: richText(text)},
	}
}

func NewNumberedListItemBlock(text string) Block {
	return Block{
		Object:           "block",
		Type:             "numbered_list_item",
		NumberedListItem: &RichTextBlock{RichText: richText(text)},
	}
}

type blockChildrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor"`
}

// ListBlockChildren returns every child block of a page or block,
// following pagination cursors.
func (c *Client) ListBlockChildren(ctx context.Context, blockId string) ([]Block, error) {
	var blocks []Block
	cursor := ""
	for {
		var out blockChildrenResponse
		req := c.Http.R().
			SetContext(ctx).
			SetResult(&out).
			SetError(&apiError{})
		if cursor != "" {
			req.SetQueryParam("start_cursor", cursor)
		}
		res, err := req.Get(fmt.Sprintf("/v1/blocks/%s/children", blockId))
		if err := checkResponse(res, err); err != nil {
			return nil, err
		}
		blocks = append(blocks, out.Results...)
		if !out.HasMore {
			return blocks, nil
		}
		cursor = out.NextCursor
	}
}

type appendChildrenRequest struct {
	Children []Block `json:"children"`
	After    string  `json:"after,omitempty"`
}

// AppendBlockChildren appends blocks to a parent, optionally after a
// specific existing child. The API caps a single call at 100 blocks so
// larger batches are chunked.
func (c *Client) AppendBlockChildren(ctx context.Context, blockId string, after string, children []Block) error {
	for len(children) > 0 {
		batch := children
		if len(batch) > 100 {
			batch = batch[:100]
		}
		children = children[len(batch):]

		var out blockChildrenResponse
		res, err := c.Http.R().
			SetContext(ctx).
			SetBody(appendChildrenRequest{Children: batch, After: after}).
			SetResult(&out).
			SetError(&apiError{}).
			Patch(fmt.Sprintf("/v1/blocks/%s/children", blockId))
		if err := checkResponse(res, err); err != nil {
			return err
		}
		if len(out.Results) > 0 {
			after = out.Results[len(out.Results)-1].Id
		}
	}
	return nil
}

func (c *Client) DeleteBlock(ctx context.Context, blockId string) error {
	res, err := c.Http.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Delete(fmt.Sprintf("/v1/blocks/%s", blockId))
	return checkResponse(res, err)
}
