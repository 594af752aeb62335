package usecase

import (
	"time"

	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/service/simulation"
)

type UseCases struct {
	clock      func() time.Time
	recorder   interfaces.SimulationRecorder
	engineOpts []simulation.Option
	Simulation *SimulationUseCase
}

type Option func(*UseCases)

// WithClock replaces time.Now as the source of result timestamps
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func WithRecorder(recorder interfaces.SimulationRecorder) Option {
	return func(uc *UseCases) {
		uc.recorder = recorder
	}
}

// WithEngineOptions sets the engine defaults used when a request does not override them
func WithEngineOptions(opts ...simulation.Option) Option {
	return func(uc *UseCases) {
		uc.engineOpts = append(uc.engineOpts, opts...)
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		clock: time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Simulation = NewSimulationUseCase(uc.clock, uc.recorder, uc.engineOpts...)

	return uc
}
