package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/protocompat/internal/dto"
	"github.com/aretw0/protocompat/internal/validator"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder for a graph description.
type Format int

const (
	FormatAuto Format = iota // Sniff the first non-blank byte
	FormatJSON
	FormatYAML
)

// FormatFromPath picks the format from a file extension, falling back to FormatAuto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Parser is responsible for converting raw description bytes into a linked Graph.
type Parser struct {
	logger    *slog.Logger
	validator *validator.Validator
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets the logger used for per-state diagnostics.
func WithLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes data, sniffing JSON or YAML from its content.
func (p *Parser) Parse(data []byte) (*domain.Graph, error) {
	return p.ParseFormat(data, FormatAuto)
}

// ParseFormat decodes and validates a description and builds the linked graph.
func (p *Parser) ParseFormat(data []byte, format Format) (*domain.Graph, error) {
	desc, err := p.Describe(data, format)
	if err != nil {
		return nil, err
	}
	return p.Build(desc)
}

// Describe decodes and validates a description without building the graph.
func (p *Parser) Describe(data []byte, format Format) (*dto.GraphDescription, error) {
	raw, err := decodeMap(data, format)
	if err != nil {
		return nil, err
	}

	var desc dto.GraphDescription
	if err := mapstructure.Decode(raw, &desc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDescription, err)
	}
	if err := p.validator.Struct(&desc); err != nil {
		return nil, err
	}

	p.logger.Debug("description decoded",
		"graph", desc.GraphName, "states", len(desc.States), "transitions", desc.CountTransitions())
	return &desc, nil
}

// Build turns a validated description into a linked graph.
func (p *Parser) Build(desc *dto.GraphDescription) (*domain.Graph, error) {
	g := domain.NewGraph(desc.GraphName)

	for _, sd := range desc.States {
		kind, err := domain.ParseStateKind(sd.StateType)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w: %v", sd.StateName, domain.ErrMalformedDescription, err)
		}

		outgoing := make([]*domain.Transition, 0, len(sd.Transitions))
		for _, td := range sd.Transitions {
			tk, err := domain.ParseTransitionKind(td.TransitionType)
			if err != nil {
				return nil, fmt.Errorf("state %q transition %q: %w: %v",
					sd.StateName, td.TransitionName, domain.ErrMalformedDescription, err)
			}
			t, err := domain.NewTransition(td.TransitionName, tk, td.NextState, td.Params...)
			if err != nil {
				return nil, fmt.Errorf("state %q transition %q: %w", sd.StateName, td.TransitionName, err)
			}
			p.logger.Debug("transition parsed",
				"state", sd.StateName, "transition", t.Name(), "type", tk,
				"params", t.NumParams(), "next_state", t.Target())
			outgoing = append(outgoing, t)
		}

		state, err := domain.NewState(sd.StateName, kind, nil, outgoing)
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", desc.GraphName, err)
		}
		if err := g.AddState(state); err != nil {
			return nil, err
		}
		p.logger.Info("state parsed", "graph", desc.GraphName, "state", sd.StateName,
			"type", kind, "outgoing", len(outgoing))
	}

	if err := g.Link(); err != nil {
		return nil, err
	}
	p.logger.Info("graph created", "graph", g.Name(), "states", g.Len())
	return g, nil
}

// decodeMap reads JSON or YAML into a generic map for mapstructure.
func decodeMap(data []byte, format Format) (map[string]any, error) {
	if format == FormatAuto {
		format = sniff(data)
	}

	var raw map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrMalformedDescription, err)
		}
	case FormatYAML, FormatAuto:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: invalid YAML: %v", domain.ErrMalformedDescription, err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty description", domain.ErrMalformedDescription)
	}
	return raw, nil
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}
