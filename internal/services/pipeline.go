// Package services wires extraction and output into a single run.
package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/babynames/pkg/babynames"
)

// Report is the outcome of one pipeline run.
type Report struct {
	Extract *babynames.ExtractResult
	Write   babynames.WriteSummary
}

// Pipeline runs the extractor once and hands the dataset to a sink once.
// Not safe for concurrent Run calls that share a sink.
type Pipeline struct {
	extractor babynames.Extractor
	logger    babynames.Logger
}

// NewPipeline creates a Pipeline. Panics on nil dependencies.
func NewPipeline(extractor babynames.Extractor, logger babynames.Logger) *Pipeline {
	if extractor == nil {
		panic("extractor cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Pipeline{extractor: extractor, logger: logger}
}

// Scan extracts root without writing anything.
func (p *Pipeline) Scan(root string) (*babynames.ExtractResult, error) {
	result, err := p.extractor.Extract(root)
	if err != nil {
		return nil, err
	}

	p.logger.Verbose("Processed %d of %d files: %d unique names, %d yearly records",
		result.Processed(), len(result.Files), len(result.Dataset.Names), len(result.Dataset.Rankings))
	if failed := result.Failed(); len(failed) > 0 {
		p.logger.Info("Skipped %d file(s) that could not be parsed", len(failed))
	}
	return result, nil
}

// Run extracts root and writes the dataset to sink.
// Skipped files do not fail the run; a sink error does.
func (p *Pipeline) Run(ctx context.Context, root string, sink babynames.Sink) (*Report, error) {
	if sink == nil {
		return nil, fmt.Errorf("sink is required: %w", babynames.ErrInvalidConfig)
	}

	result, err := p.Scan(root)
	if err != nil {
		return nil, err
	}
	report := &Report{Extract: result}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	summary, err := sink.Write(ctx, &result.Dataset)
	report.Write = summary
	if err != nil {
		return report, err
	}

	p.logger.Verbose("Wrote to %s", summary.Destination)
	return report, nil
}
