package reports

import (
	"context"
)

// Service generates a report and stores it
type Service struct {
	generator    *Generator
	orchestrator *StorageOrchestrator
}

// NewService combines a generator and a storage orchestrator
func NewService(generator *Generator, orchestrator *StorageOrchestrator) *Service {
	return &Service{generator: generator, orchestrator: orchestrator}
}

// Run builds one report and returns the stored index path
func (s *Service) Run(ctx context.Context) (*Report, string, error) {
	report, err := s.generator.Generate(ctx)
	if err != nil {
		return nil, "", err
	}
	index, err := s.orchestrator.Store(ctx, report)
	if err != nil {
		return nil, "", err
	}
	return report, index, nil
}
