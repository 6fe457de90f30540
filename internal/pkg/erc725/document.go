package erc725

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gabapcia/blockfeed/internal/pkg/types"
)

// ErrUnknownDocument is returned when a JSON document carries neither an
// LSP3Profile nor an LSP4Metadata root.
var ErrUnknownDocument = errors.New("unknown metadata document")

// Image is an entry of the icon, images, profileImage or backgroundImage arrays.
type Image struct {
	Width  types.Uint64 `json:"width"`
	Height types.Uint64 `json:"height"`
	URL    string       `json:"url"`
}

type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Asset struct {
	URL      string `json:"url"`
	FileType string `json:"fileType"`
}

// Attribute values are strings, numbers or booleans depending on Type.
type Attribute struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
	Type  string `json:"type"`
}

// LSP4Metadata describes a digital asset or a single token of a collection.
type LSP4Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Links       []Link      `json:"links"`
	Icon        []Image     `json:"icon"`
	Images      [][]Image   `json:"images"`
	Assets      []Asset     `json:"assets"`
	Attributes  []Attribute `json:"attributes"`
}

// LSP3Profile describes a Universal Profile.
type LSP3Profile struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Tags            []string `json:"tags"`
	Links           []Link   `json:"links"`
	ProfileImage    []Image  `json:"profileImage"`
	BackgroundImage []Image  `json:"backgroundImage"`
}

// Document is a parsed metadata document; exactly one root is set.
type Document struct {
	LSP3Profile  *LSP3Profile  `json:"LSP3Profile,omitempty"`
	LSP4Metadata *LSP4Metadata `json:"LSP4Metadata,omitempty"`
}

// ParseDocument decodes an LSP3 or LSP4 JSON document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("invalid metadata json: %w", err)
	}

	if doc.LSP3Profile == nil && doc.LSP4Metadata == nil {
		return Document{}, ErrUnknownDocument
	}
	return doc, nil
}

// FirstImage returns the first image of images that has a URL.
func FirstImage(images []Image) (Image, bool) {
	for _, img := range images {
		if img.URL != "" {
			return img, true
		}
	}
	return Image{}, false
}
