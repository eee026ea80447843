package storage

import (
	"context"
	"fmt"
	"strings"
)

// Remote collections.
const (
	CollectionOrders   = "orders"
	CollectionUsers    = "users"
	CollectionSettings = "settings"
)

// Settings document ids.
const (
	SettingsAgency  = "agency"
	SettingsBanner  = "banner"
	SettingsContact = "contact"
	SettingsApps    = "apps"
)

// DocPath addresses a single remote document.
type DocPath struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

func (p DocPath) String() string {
	return p.Collection + "/" + p.ID
}

// ParseDocPath parses "collection/id".
func ParseDocPath(s string) (DocPath, error) {
	collection, id, ok := strings.Cut(s, "/")
	if !ok || collection == "" || id == "" || strings.Contains(id, "/") {
		return DocPath{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	return DocPath{Collection: collection, ID: id}, nil
}

func OrderPath(id string) DocPath { return DocPath{Collection: CollectionOrders, ID: id} }

func UserPath(id string) DocPath { return DocPath{Collection: CollectionUsers, ID: id} }

func SettingsPath(name string) DocPath { return DocPath{Collection: CollectionSettings, ID: name} }

// CollectionQuery narrows a collection pull. A zero Limit means no limit.
type CollectionQuery struct {
	OrderBy    string
	Descending bool
	Limit      int32
}

// DocumentReader pulls remote state.
type DocumentReader interface {
	// PullCollection decodes the matching documents of a collection into out,
	// which must be a pointer to a slice of records.
	PullCollection(ctx context.Context, collection string, q CollectionQuery, out any) error

	// PullDocument decodes one document into out. It reports false when the
	// document does not exist.
	PullDocument(ctx context.Context, path DocPath, out any) (bool, error)
}

// DocumentWriter mirrors local state to the remote store.
type DocumentWriter interface {
	// PutDocument creates or replaces a whole document.
	PutDocument(ctx context.Context, path DocPath, value any) error

	// PatchDocument updates the given top-level fields of an existing document.
	PatchDocument(ctx context.Context, path DocPath, fields map[string]any) error
}

// RemoteStore is the full remote document store contract.
type RemoteStore interface {
	DocumentReader
	DocumentWriter
}
