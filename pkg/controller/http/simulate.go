package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/service/export"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/errutil"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
)

func (s *Server) simulateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, format, err := parseSimulateQuery(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	scenario, err := s.decodeScenario(w, r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	report, err := s.simulationUC.Simulate(ctx, scenario, opts)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	if format == export.FormatCSV {
		data, err := export.Encode(export.FormatCSV, report, time.Now().UTC())
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		safe.Write(ctx, w, data)
		return
	}

	writeJSON(w, r, http.StatusOK, report.Result)
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenario, err := s.decodeScenario(w, r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if _, err := s.simulationUC.Validate(ctx, scenario); err != nil {
		errutil.HandleHTTP(ctx, w, err, statusOf(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeScenario(w http.ResponseWriter, r *http.Request) (*model.Scenario, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer safe.Close(r.Context(), body)

	var scenario model.Scenario
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&scenario); err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "failed to decode scenario",
			goerr.V("cause", err.Error()))
	}
	if decoder.More() {
		return nil, goerr.Wrap(model.ErrValidation, "unexpected data after scenario")
	}
	return &scenario, nil
}

func parseSimulateQuery(r *http.Request) (usecase.SimulateOptions, export.Format, error) {
	var opts usecase.SimulateOptions
	q := r.URL.Query()

	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, "", goerr.Wrap(model.ErrValidation, "iterations must be a positive integer",
				goerr.V(model.ValueKey, v))
		}
		opts.Iterations = n
	}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, "", goerr.Wrap(model.ErrValidation, "seed must be an unsigned integer",
				goerr.V(model.ValueKey, v))
		}
		opts.Seed = &seed
	}

	if v := q.Get("impact_shape"); v != "" {
		shape, err := types.ParseImpactShape(v)
		if err != nil {
			return opts, "", goerr.Wrap(model.ErrValidation, "invalid impact_shape",
				goerr.V(model.ValueKey, v))
		}
		opts.Shape = shape
	}

	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		return opts, "", err
	}

	return opts, format, nil
}

// statusOf maps use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case usecase.IsClientError(err):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCancelled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
