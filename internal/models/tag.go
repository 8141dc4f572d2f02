package models

// Tag is carried on cards without interpretation
type Tag struct {
	ID       string `json:"id" yaml:"id"`
	Label    string `json:"label" yaml:"label"`
	Color    string `json:"color" yaml:"color"`
	Category string `json:"category" yaml:"category"`
}

// VariantTag is the tag marking a card as part of a variant group
func VariantTag(variantID string) Tag {
	return Tag{
		ID:       "variant-" + variantID,
		Label:    "Variant " + variantID,
		Color:    "cyan",
		Category: "variant",
	}
}

// Attachment is an opaque file reference stored on a card
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`
}
