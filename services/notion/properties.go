package notion

import "strings"

type Page struct {
	Id         string              `json:"id"`
	Archived   bool                `json:"archived"`
	Properties map[string]Property `json:"properties"`
	Cover      *File               `json:"cover,omitempty"`
	Icon       *File               `json:"icon,omitempty"`
	Url        string              `json:"url,omitempty"`
}

// Property is the union of every property shape the importer touches.
// Only the field matching Type is populated.
type Property struct {
	Type        string         `json:"type,omitempty"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Number      *float64       `json:"number,omitempty"`
	Select      *SelectOption  `json:"select,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Relation    []Relation     `json:"relation,omitempty"`
	Checkbox    *bool          `json:"checkbox,omitempty"`
	Url         *string        `json:"url,omitempty"`
}

type RichText struct {
	Type      string     `json:"type,omitempty"`
	Text      *TextValue `json:"text,omitempty"`
	PlainText string     `json:"plain_text,omitempty"`
}

type TextValue struct {
	Content string `json:"content"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type Relation struct {
	Id string `json:"id"`
}

type File struct {
	Type     string        `json:"type,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
}

type ExternalFile struct {
	Url string `json:"url"`
}

func NewExternalFile(url string) *File {
	return &File{Type: "external", External: &ExternalFile{Url: url}}
}

func richText(content string) []RichText {
	return []RichText{{Type: "text", Text: &TextValue{Content: content}}}
}

func NewTitle(content string) Property {
	return Property{Title: richText(content)}
}

func NewRichText(content string) Property {
	if content == "" {
		return Property{RichText: []RichText{}}
	}
	return Property{RichText: richText(content)}
}

func NewNumber(value float64) Property {
	return Property{Number: &value}
}

func NewSelect(name string) Property {
	return Property{Select: &SelectOption{Name: name}}
}

func NewMultiSelect(names ...string) Property {
	options := make([]SelectOption, 0, len(names))
	for _, n := range names {
		options = append(options, SelectOption{Name: n})
	}
	return Property{MultiSelect: options}
}

func NewRelation(pageIds ...string) Property {
	relations := make([]Relation, 0, len(pageIds))
	for _, id := range pageIds {
		relations = append(relations, Relation{Id: id})
	}
	return Property{Relation: relations}
}

func NewCheckbox(value bool) Property {
	return Property{Checkbox: &value}
}

func NewUrl(url string) Property {
	return Property{Url: &url}
}

func plainText(rts []RichText) string {
	var b strings.Builder
	for _, rt := range rts {
		if rt.PlainText != "" {
			b.WriteString(rt.PlainText)
			continue
		}
		if rt.Text != nil {
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}

// Title returns the page's title property text, regardless of what the
// property is named in the database schema.
func (p Page) Title() string {
	for _, prop := range p.Properties {
		if len(prop.Title) > 0 {
			return plainText(prop.Title)
		}
	}
	return ""
}

func (p Page) RichTextValue(name string) string {
	return plainText(p.Properties[name].RichText)
}

func (p Page) NumberValue(name string) float64 {
	prop := p.Properties[name]
	if prop.Number == nil {
		return 0
	}
	return *prop.Number
}

// HasNumber reports whether the number property holds a value, an
// empty number cell is not the same as zero.
func (p Page) HasNumber(name string) bool {
	return p.Properties[name].Number != nil
}

func (p Page) SelectValue(name string) string {
	prop := p.Properties[name]
	if prop.Select == nil {
		return ""
	}
	return prop.Select.Name
}

func (p Page) MultiSelectValues(name string) []string {
	prop := p.Properties[name]
	var out []string
	for _, o := range prop.MultiSelect {
		out = append(out, o.Name)
	}
	return out
}

func (p Page) RelationIds(name string) []string {
	prop := p.Properties[name]
	var out []string
	for _, r := range prop.Relation {
		out = append(out, r.Id)
	}
	return out
}

// TitleFilter builds the query filter matching a title property
// exactly or by substring.
func TitleFilter(property, value string, exact bool) map[string]any {
	condition := map[string]any{"contains": value}
	if exact {
		condition = map[string]any{"equals": value}
	}
	return map[string]any{
		"property": property,
		"title":    condition,
	}
}
