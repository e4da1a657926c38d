// Package prompt collects scaffold parameters from the user before a run.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/forgekit/forge/internal/scaffold"
)

// Prompter asks for each missing parameter on Out and reads answers from In,
// one line per parameter.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// New creates a prompter reading r and writing questions to w.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{In: r, Out: w}
}

// Collect returns a copy of data extended with an answer for every param
// that data does not already hold.
func (p *Prompter) Collect(ctx context.Context, data *scaffold.ViewContext, params []scaffold.Param) (*scaffold.ViewContext, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	out := data.Clone()
	for _, param := range params {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if out.Has(param.Name) {
			continue
		}

		fmt.Fprint(p.Out, question(param))

		line, err := p.reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return nil, fmt.Errorf("reading %s: %w", param.Name, err)
		}

		value := strings.TrimSpace(line)
		if value == "" {
			value = param.Default
		}
		if value == "" && param.Required {
			return nil, fmt.Errorf("%s is required", param.Name)
		}
		out.Set(param.Name, value)
	}
	return out, nil
}

// question formats the prompt line for one parameter.
func question(p scaffold.Param) string {
	var b strings.Builder
	if p.Description != "" {
		b.WriteString(p.Description)
		b.WriteString(" (")
		b.WriteString(p.Name)
		b.WriteString(")")
	} else {
		b.WriteString(p.Name)
	}
	if p.Default != "" {
		fmt.Fprintf(&b, " [%s]", p.Default)
	}
	b.WriteString(": ")
	return b.String()
}

// NonInteractive fills missing parameters from their defaults and fails on
// a required parameter without one.
type NonInteractive struct{}

// Collect implements scaffold.Prompter.
func (NonInteractive) Collect(_ context.Context, data *scaffold.ViewContext, params []scaffold.Param) (*scaffold.ViewContext, error) {
	out := data.Clone()
	var missing []string
	for _, param := range params {
		if out.Has(param.Name) {
			continue
		}
		if param.Default == "" && param.Required {
			missing = append(missing, param.Name)
			continue
		}
		out.Set(param.Name, param.Default)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required parameters: %s (pass them with --set)", strings.Join(missing, ", "))
	}
	return out, nil
}
