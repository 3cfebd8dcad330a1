package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/imdario/mergo"
	"github.com/thoas/go-funk"
	"gopkg.in/yaml.v3"

	"github.com/PhaserEditor2D/assetprep/internal/errs"
	"github.com/PhaserEditor2D/assetprep/internal/logging"
)

// Rule kinds for documentation links
const (
	RuleAllow = "allow"
	RuleDeny  = "deny"
)

var ruleKinds = []string{RuleAllow, RuleDeny}

// Config holds every setting of the release-asset tooling. Zero values mean "not set" when a Config is used as a set
// of overrides.
type Config struct {
	Plist     Plist     `yaml:"plist"`
	Links     Links     `yaml:"links"`
	Artifacts Artifacts `yaml:"artifacts"`
}

// Plist configures the Info.plist template renderer.
type Plist struct {
	TemplateDir    string   `yaml:"template_dir"`
	OutputDir      string   `yaml:"output_dir"`
	Templates      []string `yaml:"templates"`
	Token          string   `yaml:"token"`
	SkipValidation bool     `yaml:"skip_validation"`
}

// Links configures the documentation link validator.
type Links struct {
	Dir     string     `yaml:"dir"`
	Pattern string     `yaml:"pattern"`
	Rules   []LinkRule `yaml:"rules"`
}

// LinkRule is one URL family: a pattern finding the URLs and the prefixes they are checked against.
type LinkRule struct {
	Name     string   `yaml:"name"`
	Kind     string   `yaml:"kind"`
	Pattern  string   `yaml:"pattern"`
	Prefixes []string `yaml:"prefixes"`
}

// Artifacts configures the artifact descriptor patcher.
type Artifacts struct {
	BinaryDir      string `yaml:"binary_dir"`
	Binary         string `yaml:"binary"`
	Descriptor     string `yaml:"descriptor"`
	ArtifactID     string `yaml:"artifact_id"`
	ProductVersion string `yaml:"product_version"`
	Strict         bool   `yaml:"strict"`
}

// BinaryPath returns the binary to hash: the explicit binary if set, otherwise
// <binary_dir>/<artifact_id>_<product_version>.
func (a Artifacts) BinaryPath() string {
	if a.Binary != "" {
		return a.Binary
	}
	return filepath.Join(a.BinaryDir, a.ArtifactID+"_"+a.ProductVersion)
}

// Load reads the YAML file at path on top of the defaults. A missing file is only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			logging.Debug("No config file at %s, using defaults", path)
			return &cfg, nil
		}
		return nil, errs.Wrap(err, "Could not read config file: %s", path)
	}

	if err := Decode(bytes.NewReader(b), &cfg); err != nil {
		return nil, errs.Wrap(err, "Could not parse config file: %s", path)
	}
	logging.Debug("Loaded config file %s", path)

	return &cfg, nil
}

// Decode decodes YAML onto cfg, rejecting unknown keys. An empty document leaves cfg untouched.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errs.Wrap(err, "Invalid configuration")
	}
	return nil
}

// Merge applies every non-zero field of overrides on top of cfg. Booleans can only be switched on this way, flags that
// switch them off set the field directly.
func (c *Config) Merge(overrides Config) error {
	if err := mergo.Merge(c, overrides, mergo.WithOverride); err != nil {
		return errs.Wrap(err, "Could not apply configuration overrides")
	}
	return nil
}

// Validate reports the first setting that can not work.
func (c *Config) Validate() error {
	if err := c.Plist.validate(); err != nil {
		return err
	}
	if err := c.Links.validate(); err != nil {
		return err
	}
	return c.Artifacts.validate()
}

func (p Plist) validate() error {
	if len(p.Templates) == 0 {
		return invalid("plist.templates must list at least one template")
	}
	for _, t := range p.Templates {
		if strings.TrimSpace(t) == "" || strings.ContainsAny(t, `/\`) {
			return invalid("plist.templates contains an invalid template name: %q", t)
		}
	}
	if p.Token == "" {
		return invalid("plist.token can not be empty")
	}
	return nil
}

func (l Links) validate() error {
	if l.Pattern == "" {
		return invalid("links.pattern can not be empty")
	}
	for i, r := range l.Rules {
		if !funk.ContainsString(ruleKinds, r.Kind) {
			return invalid("links.rules[%d] has unknown kind %q, expected one of %s", i, r.Kind, strings.Join(ruleKinds, ", "))
		}
		if _, err := regexp.Compile(r.Pattern); err != nil || r.Pattern == "" {
			return invalid("links.rules[%d] has an invalid pattern %q", i, r.Pattern)
		}
		if r.Kind == RuleAllow && len(r.Prefixes) == 0 {
			return invalid("links.rules[%d] is an allow rule without prefixes, every link would be rejected", i)
		}
	}
	return nil
}

func (a Artifacts) validate() error {
	if a.Descriptor == "" {
		return invalid("artifacts.descriptor can not be empty")
	}
	if a.ArtifactID == "" {
		return invalid("artifacts.artifact_id can not be empty")
	}
	if a.Binary == "" && a.ProductVersion == "" {
		return invalid("artifacts.product_version is required unless artifacts.binary is set")
	}
	return nil
}

func invalid(msg string, args ...interface{}) error {
	text := fmt.Sprintf(msg, args...)
	return errs.WrapUserFacing(errs.New("invalid configuration: %s", text), "Invalid configuration: "+text, errs.SetInput())
}
