package primer

import (
	"github.com/PhaserEditor2D/assetprep/internal/config"
	"github.com/PhaserEditor2D/assetprep/internal/output"
	"github.com/PhaserEditor2D/assetprep/internal/prompt"
)

// Values carries the dependencies shared by all runners
type Values struct {
	output output.Outputer
	prompt prompt.Prompter
	config *config.Config
}

func New(output output.Outputer, prompt prompt.Prompter, config *config.Config) *Values {
	return &Values{
		output: output,
		prompt: prompt,
		config: config,
	}
}

type Outputer interface {
	Output() output.Outputer
}

type Prompter interface {
	Prompt() prompt.Prompter
}

type Configurer interface {
	Config() *config.Config
}

func (v *Values) Output() output.Outputer {
	return v.output
}

func (v *Values) Prompt() prompt.Prompter {
	return v.prompt
}

func (v *Values) Config() *config.Config {
	return v.config
}
