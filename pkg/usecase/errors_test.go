package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

func TestIsClientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "validation", err: goerr.Wrap(model.ErrValidation, "bad probability"), want: true},
		{name: "empty scenario", err: goerr.Wrap(model.ErrEmptyScenario, "no events"), want: true},
		{name: "cancelled", err: goerr.Wrap(model.ErrCancelled, "stopped"), want: false},
		{name: "context error", err: context.Canceled, want: false},
		{name: "unrelated", err: errors.New("disk failure"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, usecase.IsClientError(tt.err)).Equal(tt.want)
		})
	}
}
