// Package fixtures seeds the database from a JSON dataset.
package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
)

// Fixture is a full dataset. IDs are local to the file and only used to
// reference records from posts.
type Fixture struct {
	Groups     []TaxonomyFixture `json:"groups"`
	Categories []TaxonomyFixture `json:"categories"`
	Durations  []DurationFixture `json:"durations"`
	Links      []LinkFixture     `json:"links"`
	Posts      []PostFixture     `json:"posts"`
}

type TaxonomyFixture struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type DurationFixture struct {
	ID    uint `json:"id"`
	Value int  `json:"value"`
}

type LinkFixture struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	URL  string `json:"url"`
}

type PostFixture struct {
	Title    string  `json:"title"`
	Group    uint    `json:"group"`
	Category uint    `json:"category"`
	Duration uint    `json:"duration"`
	Text     *string `json:"text"`
	Links    []uint  `json:"links"`
	Image    string  `json:"image"`
	Audio    string  `json:"audio"`
	Video    string  `json:"video"`
}

// Decode reads a fixture, rejecting unknown fields.
func Decode(r io.Reader) (*Fixture, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &f, nil
}
