package metadata

// Attribute is one entry of an NFT metadata attributes array.
// Value is a string or a number depending on the collection.
type Attribute struct {
	TraitType   *string `json:"trait_type,omitempty"`
	Type        *string `json:"type,omitempty"`
	Value       any     `json:"value,omitempty"`
	DisplayType *string `json:"display_type,omitempty"`
}

// NftMetadata is the subset of the token URI document the indexer stores
type NftMetadata struct {
	Name        string      `json:"name"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	ExternalURL string      `json:"external_url"`
	Attributes  []Attribute `json:"attributes"`
}

// CollectionMetadata is the pallet collection details document
type CollectionMetadata struct {
	Pfp         string              `json:"pfp"`
	Description string              `json:"description"`
	Slug        string              `json:"slug"`
	Banner      string              `json:"banner"`
	Volume      *float64            `json:"volume"`
	Socials     []map[string]string `json:"socials"`
}
