package config

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/tilegrab/pkg/errutils"
)

// SupportedJobVersions is the constraint a job's optional version key must satisfy.
const SupportedJobVersions = ">= 1.0, < 2.0"

// JobVersionKey is the optional top-level key carrying the job schema version.
const JobVersionKey = "version"

// LoadJob reads a job file (YAML or JSON) into the options object handed to the
// downloader: a map with the tile and area keys.
func LoadJob(path string) (map[string]any, error) {
	if path == "" {
		return nil, errutils.Wrap(errutils.ErrInvalidPath, "job file path cannot be empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errutils.Wrapf(err, "failed to open job file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadJobFromReader(file)
}

// LoadJobFromReader decodes a job from r and checks its version.
func LoadJobFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read job data")
	}

	var job map[string]any
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, errutils.Wrap(errutils.ErrJobParse, err.Error())
	}
	if job == nil {
		return nil, errutils.Wrap(errutils.ErrJobParse, "job is empty")
	}

	if err := checkJobVersion(job[JobVersionKey]); err != nil {
		return nil, err
	}
	return job, nil
}

// checkJobVersion accepts a missing version.
func checkJobVersion(raw any) error {
	if raw == nil {
		return nil
	}
	constraint, err := version.NewConstraint(SupportedJobVersions)
	if err != nil {
		return fmt.Errorf("invalid version constraint: %w", err)
	}
	declared := fmt.Sprint(raw)
	v, err := version.NewVersion(declared)
	if err != nil {
		return errutils.ErrJobVersionWithDetails(declared, SupportedJobVersions)
	}
	if !constraint.Check(v) {
		return errutils.ErrJobVersionWithDetails(declared, SupportedJobVersions)
	}
	return nil
}
