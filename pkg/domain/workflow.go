package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrConfigParse      = errors.New("workflow config is not valid")
)

// Workflow is a user-owned automation. Config holds the persisted step tree as
// a raw JSON blob; it is parsed per request, never stored in decoded form.
type Workflow struct {
	ID            string
	UserID        string
	Name          string
	Description   string
	Config        []byte
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

// WorkflowConfig is the decoded form of Workflow.Config.
type WorkflowConfig struct {
	Steps []WorkflowStep `json:"steps"`
}

// WorkflowStep is one node of the step tree. Then and Else carry the branches
// of a conditional step, Steps carries a nested subflow. Inputs is an
// arbitrary JSON value authored by the user.
type WorkflowStep struct {
	ID     string         `json:"id"`
	Module string         `json:"module,omitempty"`
	Inputs any            `json:"inputs,omitempty"`
	Then   []WorkflowStep `json:"then,omitempty"`
	Else   []WorkflowStep `json:"else,omitempty"`
	Steps  []WorkflowStep `json:"steps,omitempty"`
}

// ParseWorkflowConfig decodes a persisted config blob into the step tree.
// Malformed blobs indicate corrupted persisted data and surface as
// ErrConfigParse.
func ParseWorkflowConfig(raw []byte) (WorkflowConfig, error) {
	if len(raw) == 0 {
		return WorkflowConfig{}, nil
	}

	var config WorkflowConfig
	if err := json.Unmarshal(raw, &config); err != nil {
		return WorkflowConfig{}, fmt.Errorf("%w: %s", ErrConfigParse, err)
	}

	return config, nil
}

// WorkflowRepository loads workflows scoped to their owner. Implementations
// return ErrWorkflowNotFound both for missing workflows and for workflows
// owned by someone else.
type WorkflowRepository interface {
	GetWorkflowForUser(ctx context.Context, workflowID string, userID string) (Workflow, error)
}
