package prompt

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"
)

// ICPConfig describes the deployment's Ideal Client Profile
type ICPConfig struct {
	Description          string   `json:"description,omitempty"`
	TargetIndustries     []string `json:"target_industries,omitempty"`
	TargetCompanySizes   []string `json:"target_company_sizes,omitempty"`
	TargetRoles          []string `json:"target_roles,omitempty"`
	GeographicFocus      []string `json:"geographic_focus,omitempty"`
	DisqualifyingSignals []string `json:"disqualifying_signals,omitempty"`
}

// IsEmpty reports whether no ICP field is set
func (c *ICPConfig) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Description == "" &&
		len(c.TargetIndustries) == 0 &&
		len(c.TargetCompanySizes) == 0 &&
		len(c.TargetRoles) == 0 &&
		len(c.GeographicFocus) == 0 &&
		len(c.DisqualifyingSignals) == 0
}

// Config is the deployment-specific prompt customization. All fields are
// optional; only configured fields contribute sections to the prompts.
type Config struct {
	CompanyName         string     `json:"company_name,omitempty"`
	ServicesDescription string     `json:"services_description,omitempty"`
	ICP                 *ICPConfig `json:"icp,omitempty"`
	QualifyingQuestions []string   `json:"qualifying_questions,omitempty"`
	CustomInstructions  string     `json:"custom_instructions,omitempty"`
	ResearchFocusAreas  []string   `json:"research_focus_areas,omitempty"`
}

// IsEmpty reports whether the configuration has no values set
func (c *Config) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.CompanyName == "" &&
		c.ServicesDescription == "" &&
		c.ICP.IsEmpty() &&
		len(c.QualifyingQuestions) == 0 &&
		c.CustomInstructions == "" &&
		len(c.ResearchFocusAreas) == 0
}

// Holder provides concurrent access to the current prompt configuration.
// Readers always observe a complete config; updates replace the whole value
// atomically, so there is no partial-update visibility.
type Holder struct {
	current atomic.Pointer[Config]
}

// NewHolder creates a holder seeded with the given config (nil means empty)
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	if cfg == nil {
		cfg = &Config{}
	}
	h.current.Store(cfg)
	return h
}

// Get returns the current configuration
func (h *Holder) Get() *Config {
	return h.current.Load()
}

// Update atomically replaces the configuration
func (h *Holder) Update(cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	h.current.Store(cfg)
}

// LoadConfigFile reads a prompt configuration from a JSON file. A missing
// file yields an empty configuration; malformed JSON is an error.
func LoadConfigFile(path string) (*Config, error) {
	if path == "" {
		// Default discovery locations
		for _, candidate := range []string{"prompt_config.json", "configs/prompt_config.json"} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read prompt config %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse prompt config %s: %w", path, err)
	}
	return &cfg, nil
}
