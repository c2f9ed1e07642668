package scraper

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownProfile = errors.New("unknown selector profile")

// Profile is the set of selectors for one page layout. Body and Rating are
// evaluated inside each element matched by Container.
type Profile struct {
	Name      string   `yaml:"name,omitempty" json:"name"`
	Hosts     []string `yaml:"hosts" json:"hosts"`
	Container string   `yaml:"container" json:"container"`
	Body      string   `yaml:"body" json:"body"`
	Rating    string   `yaml:"rating" json:"rating"`
}

type ProfileSet struct {
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

const amazonProfile = "amazon"

func DefaultProfiles() *ProfileSet {
	return &ProfileSet{
		Default: amazonProfile,
		Profiles: map[string]Profile{
			amazonProfile: {
				Name: amazonProfile,
				Hosts: []string{
					"amazon.com", "amazon.co.uk", "amazon.de", "amazon.fr",
					"amazon.it", "amazon.es", "amazon.ca", "amazon.com.au",
				},
				Container: ".review",
				Body:      ".review-text-content span",
				Rating:    ".a-icon-alt",
			},
		},
	}
}

// LoadProfiles overlays the profiles defined in the YAML file at path on top
// of the built-in set. An empty path returns the built-in set.
func LoadProfiles(path string) (*ProfileSet, error) {
	set := DefaultProfiles()
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selectors file: %w", err)
	}

	var file ProfileSet
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse selectors file: %w", err)
	}

	for name, p := range file.Profiles {
		if p.Container == "" || p.Body == "" {
			return nil, fmt.Errorf("profile %q: container and body selectors are required", name)
		}
		p.Name = name
		set.Profiles[name] = p
	}

	if file.Default != "" {
		if _, ok := set.Profiles[file.Default]; !ok {
			return nil, fmt.Errorf("default profile %q: %w", file.Default, ErrUnknownProfile)
		}
		set.Default = file.Default
	}

	return set, nil
}

// Resolve picks the profile for a page. An explicit name wins, then a host
// match, then the default profile.
func (s *ProfileSet) Resolve(name, rawURL string) (Profile, error) {
	if name != "" {
		p, ok := s.Profiles[name]
		if !ok {
			return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
		}
		return p, nil
	}

	if u, err := url.Parse(rawURL); err == nil {
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		for _, n := range s.Names() {
			p := s.Profiles[n]
			for _, h := range p.Hosts {
				if host == h || strings.HasSuffix(host, "."+h) {
					return p, nil
				}
			}
		}
	}

	p, ok := s.Profiles[s.Default]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, s.Default)
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for n := range s.Profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *ProfileSet) List() []Profile {
	profiles := make([]Profile, 0, len(s.Profiles))
	for _, n := range s.Names() {
		profiles = append(profiles, s.Profiles[n])
	}
	return profiles
}
