package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture describes site content to load into an empty store
type Fixture struct {
	Sections       []SectionFixture    `yaml:"sections"`
	LandingPages   []PageFixture       `yaml:"landingPages"`
	BlogPosts      []PageFixture       `yaml:"blogPosts"`
	CodedPages     []PageFixture       `yaml:"codedPages"`
	Clients        []Document          `yaml:"clients"`
	TeamMembers    []Document          `yaml:"teamMembers"`
	Services       []Document          `yaml:"services"`
	Testimonials   []Document          `yaml:"testimonials"`
	FunnelSteps    []Document          `yaml:"funnelSteps"`
	PortfolioItems []Document          `yaml:"portfolioItems"`
	Settings       map[string]Document `yaml:"settings"`
}

// Document is a free-form record; keys follow the JSON field names of the entity
type Document map[string]interface{}

// SectionFixture is a section added from the catalog, then filled in
type SectionFixture struct {
	Type    string   `yaml:"type"`
	Visible *bool    `yaml:"visible"`
	Content Document `yaml:"content"`
}

// PageFixture is a landing page, blog post or coded page
type PageFixture struct {
	Title       string           `yaml:"title"`
	Slug        string           `yaml:"slug"`
	Visible     *bool            `yaml:"visible"`
	Description string           `yaml:"description"`
	Excerpt     string           `yaml:"excerpt"`
	CoverImage  string           `yaml:"coverImage"`
	Author      string           `yaml:"author"`
	Sections    []SectionFixture `yaml:"sections"`
}

// ParseFixture decodes a YAML fixture; unknown top level keys are rejected
func ParseFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

// LoadFixture reads a YAML fixture from disk
func LoadFixture(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()
	return ParseFixture(file)
}
