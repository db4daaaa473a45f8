package catalog

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Image is one entry of a product's image sub-document
type Image struct {
	ID       int64  `json:"id,omitempty"`
	Src      string `json:"src"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ImageList is the typed form of the serialized images blob
type ImageList []Image

// Variant is one entry of a product's variant sub-document. The first variant
// is the primary variant the flattened product fields are derived from.
type Variant struct {
	ID                int64               `json:"id,omitempty"`
	Title             string              `json:"title,omitempty"`
	Price             decimal.Decimal     `json:"price"`
	CompareAtPrice    decimal.NullDecimal `json:"compare_at_price"`
	SKU               string              `json:"sku,omitempty"`
	Barcode           string              `json:"barcode,omitempty"`
	InventoryQuantity int64               `json:"inventory_quantity"`
	Weight            decimal.Decimal     `json:"weight"`
	WeightUnit        string              `json:"weight_unit,omitempty"`
	RequiresShipping  bool                `json:"requires_shipping"`
	Taxable           bool                `json:"taxable"`
	Position          int                 `json:"position,omitempty"`
}

// VariantList is the typed form of the serialized variants blob
type VariantList []Variant

// Primary returns the first variant, or nil when the record has none
func (l VariantList) Primary() *Variant {
	if len(l) == 0 {
		return nil
	}
	return &l[0]
}

// Option is one entry of a product's option sub-document
type Option struct {
	ID       int64    `json:"id,omitempty"`
	Name     string   `json:"name"`
	Position int      `json:"position,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// OptionList is the typed form of the serialized options blob
type OptionList []Option

// DecodeImageList decodes a serialized images blob. An empty blob decodes to
// an empty list.
func DecodeImageList(raw string) (ImageList, error) {
	if raw == "" {
		return ImageList{}, nil
	}
	var images ImageList
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, err
	}
	return images, nil
}

// Encode serializes the image list for storage
func (l ImageList) Encode() (string, error) {
	return encodeList(l)
}

// DecodeVariantList decodes a serialized variants blob
func DecodeVariantList(raw string) (VariantList, error) {
	if raw == "" {
		return VariantList{}, nil
	}
	var variants VariantList
	if err := json.Unmarshal([]byte(raw), &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

// Encode serializes the variant list for storage
func (l VariantList) Encode() (string, error) {
	return encodeList(l)
}

// DecodeOptionList decodes a serialized options blob
func DecodeOptionList(raw string) (OptionList, error) {
	if raw == "" {
		return OptionList{}, nil
	}
	var options OptionList
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return nil, err
	}
	return options, nil
}

// Encode serializes the option list for storage
func (l OptionList) Encode() (string, error) {
	return encodeList(l)
}

func encodeList(v any) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
