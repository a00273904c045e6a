package engine

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Protocol is the content of an experiment protocol file. Attributes left
// out of the file stay nil and do not override the configuration.
//
//	trials          = 20
//	resize_fraction = 0.08
//	seed            = 42
//
//	timing {
//	  fixation_ms     = 500
//	  prime_ms        = 100
//	  max_response_ms = 30000
//	}
type Protocol struct {
	Trials         *int     `hcl:"trials,optional"`
	ResizeFraction *float64 `hcl:"resize_fraction,optional"`
	Seed           *int64   `hcl:"seed,optional"`
	Width          *int     `hcl:"width,optional"`
	Height         *int     `hcl:"height,optional"`
	AssetsDir      *string  `hcl:"assets_dir,optional"`
	Schedule       *string  `hcl:"schedule,optional"`
	Output         *string  `hcl:"output,optional"`
	Fullscreen     *bool    `hcl:"fullscreen,optional"`
	Timing         *Timing  `hcl:"timing,block"`
}

type Timing struct {
	FixationMS    *int `hcl:"fixation_ms,optional"`
	PrimeMS       *int `hcl:"prime_ms,optional"`
	MaxResponseMS *int `hcl:"max_response_ms,optional"`
}

func LoadProtocol(path string) (*Protocol, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse protocol %s: %w", path, diags)
	}
	return decodeProtocol(file, path)
}

// ParseProtocol decodes protocol source held in memory; filename is used in
// diagnostics only.
func ParseProtocol(src []byte, filename string) (*Protocol, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse protocol %s: %w", filename, diags)
	}
	return decodeProtocol(file, filename)
}

func decodeProtocol(file *hcl.File, name string) (*Protocol, error) {
	var p Protocol
	if diags := gohcl.DecodeBody(file.Body, nil, &p); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode protocol %s: %w", name, diags)
	}
	if err := p.check(); err != nil {
		return nil, fmt.Errorf("protocol %s: %w", name, err)
	}
	return &p, nil
}

func (p *Protocol) check() error {
	if p.Trials != nil && *p.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", *p.Trials)
	}
	if p.ResizeFraction != nil && (*p.ResizeFraction <= 0 || *p.ResizeFraction > 1) {
		return fmt.Errorf("resize_fraction must be in (0, 1], got %v", *p.ResizeFraction)
	}
	if t := p.Timing; t != nil {
		for name, v := range map[string]*int{
			"fixation_ms":     t.FixationMS,
			"prime_ms":        t.PrimeMS,
			"max_response_ms": t.MaxResponseMS,
		} {
			if v != nil && *v < 0 {
				return fmt.Errorf("timing.%s must not be negative, got %d", name, *v)
			}
		}
	}
	return nil
}

// Apply copies every value set in the protocol onto cfg.
func (p *Protocol) Apply(cfg *Config) {
	if p.Trials != nil {
		cfg.NumTrials = *p.Trials
	}
	if p.ResizeFraction != nil {
		cfg.ResizeFraction = *p.ResizeFraction
	}
	if p.Seed != nil {
		cfg.Seed = *p.Seed
	}
	if p.Width != nil {
		cfg.ScreenWidth = *p.Width
	}
	if p.Height != nil {
		cfg.ScreenHeight = *p.Height
	}
	if p.AssetsDir != nil {
		cfg.AssetsDir = *p.AssetsDir
	}
	if p.Schedule != nil {
		cfg.ScheduleFile = *p.Schedule
	}
	if p.Output != nil {
		cfg.OutputFile = *p.Output
	}
	if p.Fullscreen != nil {
		cfg.Fullscreen = *p.Fullscreen
	}
	if t := p.Timing; t != nil {
		if t.FixationMS != nil {
			cfg.FixationMS = uint64(*t.FixationMS)
		}
		if t.PrimeMS != nil {
			cfg.PrimeMS = uint64(*t.PrimeMS)
		}
		if t.MaxResponseMS != nil {
			cfg.MaxResponseMS = uint64(*t.MaxResponseMS)
		}
	}
}
