package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

// LoadScenario reads a scenario from a JSON (.json) or TOML (.toml) file. The scenario is
// returned as written; normalization and validation happen in the use case.
func LoadScenario(path string) (*model.Scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrScenarioNotFound, "failed to read scenario",
				goerr.V(ScenarioPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read scenario", goerr.V(ScenarioPathKey, path))
	}

	var scenario model.Scenario
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&scenario)
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		err = decoder.Decode(&scenario)
	default:
		return nil, goerr.Wrap(ErrUnsupportedFormat, "scenario must be .json or .toml",
			goerr.V(ScenarioPathKey, path))
	}
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidScenario, err.Error(), goerr.V(ScenarioPathKey, path))
	}

	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &scenario, nil
}
