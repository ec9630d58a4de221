package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawProduct is a product record exactly as it appears in the catalog
// file. The catalog mixes two generations of data: Shopify exports
// (HTML description string, variant-level pricing, inventoryQty) and
// hand-written sample records (structured description, direct price,
// inStock flag). Every field except ID and Title is optional.
type RawProduct struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    FlexDescription   `json:"description,omitempty"`
	Price          *FlexFloat        `json:"price,omitempty"`
	Images         []string          `json:"images,omitempty"`
	Type           string            `json:"type,omitempty"`
	Category       string            `json:"category,omitempty"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Vendor         string            `json:"vendor,omitempty"`
	Variants       []Variant         `json:"variants,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	ExternalLinks  map[string]string `json:"externalLinks,omitempty"`
	InStock        *bool             `json:"inStock,omitempty"`
}

// Variant is a purchasable option of a product (size/color combination)
// carrying its own price and inventory count.
type Variant struct {
	Price        *FlexFloat `json:"price,omitempty"`
	Option1      string     `json:"option1,omitempty"`
	Option2      string     `json:"option2,omitempty"`
	InventoryQty int        `json:"inventoryQty,omitempty"`
	VariantImg   string     `json:"variantImg,omitempty"`
}

// FlexFloat is a float64 that also accepts numeric strings in JSON
// (Shopify exports quote variant prices). Anything unparseable decodes
// to NaN rather than failing the whole catalog load.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = FlexFloat(math.NaN())
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = FlexFloat(math.NaN())
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = FlexFloat(math.NaN())
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = FlexFloat(math.NaN())
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// MarshalJSON implements json.Marshaler. Invalid values serialize as
// null so a product that decoded with an unparseable price can always
// be served back out.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Valid reports whether the value is a usable number.
func (f *FlexFloat) Valid() bool {
	return f != nil && !math.IsNaN(float64(*f))
}

// Value returns the numeric value, or 0 when invalid.
func (f *FlexFloat) Value() float64 {
	if !f.Valid() {
		return 0
	}
	return float64(*f)
}

// FlexDescription accepts both description shapes found in the catalog:
// a plain/HTML string, or an object with short and long fields.
type FlexDescription struct {
	Short string
	Long  string
	// Text holds the original string form when the description was not
	// structured; empty otherwise.
	Text string

	structured bool
}

// TextDescription builds the unstructured string form.
func TextDescription(text string) FlexDescription {
	return FlexDescription{Text: text}
}

// StructuredDescription builds the {short, long} form.
func StructuredDescription(short, long string) FlexDescription {
	return FlexDescription{Short: short, Long: long, structured: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *FlexDescription) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*d = FlexDescription{}
		return nil
	}

	if data[0] == '{' {
		var obj struct {
			Short string `json:"short"`
			Long  string `json:"long"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			*d = FlexDescription{}
			return nil
		}
		*d = FlexDescription{Short: obj.Short, Long: obj.Long, structured: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = FlexDescription{}
		return nil
	}
	*d = FlexDescription{Text: s}
	return nil
}

// MarshalJSON round-trips the original shape.
func (d FlexDescription) MarshalJSON() ([]byte, error) {
	if d.structured {
		return json.Marshal(struct {
			Short string `json:"short"`
			Long  string `json:"long"`
		}{d.Short, d.Long})
	}
	return json.Marshal(d.Text)
}

// Structured reports whether the description came in {short, long} form.
func (d FlexDescription) Structured() bool {
	return d.structured
}

// SearchText returns the textual content used for relevance matching:
// the raw string for unstructured descriptions, short and long joined
// for structured ones.
func (d FlexDescription) SearchText() string {
	if d.structured {
		return strings.TrimSpace(d.Short + " " + d.Long)
	}
	return d.Text
}
