package managers

import (
	"encoding/json"
	"testing"

	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRequirementsManager_ExtractPlatforms(t *testing.T) {
	manager := NewCredentialRequirementsManager()

	tests := []struct {
		name     string
		config   domain.WorkflowConfig
		expected []string
	}{
		{
			name:     "empty config",
			config:   domain.WorkflowConfig{},
			expected: []string{},
		},
		{
			name: "module keyword match",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Module: "social.twitter.postTweet"},
			}},
			expected: []string{"twitter"},
		},
		{
			name: "claude keyword maps to anthropic",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Module: "ai.anthropic.claude.generate"},
			}},
			expected: []string{"anthropic"},
		},
		{
			name: "module path matching several keywords adds several platforms",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Module: "bridge.slack.to.discord"},
			}},
			expected: []string{"discord", "slack"},
		},
		{
			name: "module matching is case insensitive",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Module: "Social.Twitter.PostTweet"},
			}},
			expected: []string{"twitter"},
		},
		{
			name: "template reference in inputs",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Inputs: map[string]any{"prompt": "Use {{user.openai}} here"}},
			}},
			expected: []string{"openai"},
		},
		{
			name: "duplicate template references collapse",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Inputs: "Hello {{user.openai}} and {{user.openai}}"},
			}},
			expected: []string{"openai"},
		},
		{
			name: "template token outside keyword list is still added",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Inputs: map[string]any{"key": "{{user.stripe}}"}},
			}},
			expected: []string{"stripe"},
		},
		{
			name: "template references in deeply nested inputs",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Inputs: map[string]any{
					"headers": []any{
						map[string]any{"value": "Bearer {{user.rapidapi}}"},
					},
					"count": float64(3),
					"flag":  true,
					"empty": nil,
				}},
			}},
			expected: []string{"rapidapi"},
		},
		{
			name: "step three levels deep inside then, steps, else",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{
					ID: "s1",
					Then: []domain.WorkflowStep{
						{
							ID: "s2",
							Steps: []domain.WorkflowStep{
								{
									ID: "s3",
									Else: []domain.WorkflowStep{
										{ID: "s4", Module: "media.youtube.upload"},
									},
								},
							},
						},
					},
				},
			}},
			expected: []string{"youtube"},
		},
		{
			name: "both rules union across the tree",
			config: domain.WorkflowConfig{Steps: []domain.WorkflowStep{
				{ID: "s1", Module: "social.reddit.submit", Inputs: "{{user.openai}}"},
				{ID: "s2", Module: "code.github.createIssue"},
			}},
			expected: []string{"github", "openai", "reddit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, manager.ExtractPlatforms(tt.config))
		})
	}
}

func TestCredentialRequirementsManager_SiblingOrderInsensitive(t *testing.T) {
	manager := NewCredentialRequirementsManager()

	stepA := domain.WorkflowStep{ID: "a", Module: "social.twitter.post"}
	stepB := domain.WorkflowStep{ID: "b", Inputs: "{{user.openai}}"}
	stepC := domain.WorkflowStep{ID: "c", Module: "chat.slack.send"}

	forward := manager.ExtractPlatforms(domain.WorkflowConfig{Steps: []domain.WorkflowStep{stepA, stepB, stepC}})
	reversed := manager.ExtractPlatforms(domain.WorkflowConfig{Steps: []domain.WorkflowStep{stepC, stepB, stepA}})

	assert.Equal(t, forward, reversed)
	assert.Equal(t, []string{"openai", "slack", "twitter"}, forward)
}

func TestCredentialRequirementsManager_DecodedJSONInputs(t *testing.T) {
	// Inputs arrive as decoded JSON from the persisted config blob; make sure
	// extraction handles that shape, not just hand-built literals.
	raw := []byte(`{
		"steps": [
			{
				"id": "s1",
				"module": "http.request",
				"inputs": {
					"url": "https://api.example.com",
					"headers": {"Authorization": "Bearer {{user.newsapi}}"},
					"retries": 3
				}
			}
		]
	}`)

	var config domain.WorkflowConfig
	require.NoError(t, json.Unmarshal(raw, &config))

	manager := NewCredentialRequirementsManager()

	assert.Equal(t, []string{"newsapi"}, manager.ExtractPlatforms(config))
}
