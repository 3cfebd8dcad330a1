package config

import "github.com/brunoga/deep"

const (
	// DefaultFileName is the config file picked up from the working directory when --config is not given
	DefaultFileName = "assetprep.yaml"

	defaultTemplateDir = "."
	defaultOutputDir   = "."
	defaultToken       = "${ver}"

	defaultDocsDir     = "."
	defaultDocsPattern = "*.rst"

	defaultBinaryDir      = "target/repository/binary"
	defaultDescriptor     = "target/repository/artifacts.xml"
	defaultArtifactID     = "phasereditor2d.com.executable.cocoa.macosx.x86_64"
	defaultProductVersion = "1.5.3"
)

var defaultTemplates = []string{"app", "repository"}

// DocsLinkRule is the allow list for links into the product documentation site.
var DocsLinkRule = LinkRule{
	Name:    "editor-docs",
	Kind:    RuleAllow,
	Pattern: `https?://(?:www\.)?phasereditor2d\.com/docs/[^\s<>"'` + "`" + `)\]]*`,
	Prefixes: []string{
		"https://phasereditor2d.com/docs/v3/",
		"https://phasereditor2d.com/docs/latest/",
	},
}

// APILinkRule is the deny list for links into the framework API documentation.
var APILinkRule = LinkRule{
	Name:    "phaser-api",
	Kind:    RuleDeny,
	Pattern: `https?://photonstorm\.github\.io/phaser[^\s<>"'` + "`" + `)\]]*`,
	Prefixes: []string{
		"http://photonstorm.github.io/",
		"https://photonstorm.github.io/phaser-ce/",
		"https://photonstorm.github.io/phaser3-docs/index.html",
	},
}

// Default returns a Config populated with the repository defaults, which match the release layout of the editor.
func Default() Config {
	return Config{
		Plist: Plist{
			TemplateDir: defaultTemplateDir,
			OutputDir:   defaultOutputDir,
			Templates:   deep.MustCopy(defaultTemplates),
			Token:       defaultToken,
		},
		Links: Links{
			Dir:     defaultDocsDir,
			Pattern: defaultDocsPattern,
			Rules:   []LinkRule{cloneRule(DocsLinkRule), cloneRule(APILinkRule)},
		},
		Artifacts: Artifacts{
			BinaryDir:      defaultBinaryDir,
			Descriptor:     defaultDescriptor,
			ArtifactID:     defaultArtifactID,
			ProductVersion: defaultProductVersion,
		},
	}
}

func cloneRule(r LinkRule) LinkRule {
	return deep.MustCopy(r)
}
