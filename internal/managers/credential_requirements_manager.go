package managers

import (
	"regexp"
	"sort"
	"strings"

	"github.com/taskloom/taskloom/pkg/domain"
)

// maxStepDepth bounds the recursion over user-authored step trees. Persisted
// configs are finite, but the tree shape is attacker-controlled input.
const maxStepDepth = 128

// moduleKeywords maps substrings of a step's module path to the platform the
// module talks to. A single path may match several keywords and contribute
// several platforms.
var moduleKeywords = []struct {
	keyword  string
	platform string
}{
	{"twitter", "twitter"},
	{"openai", "openai"},
	{"anthropic", "anthropic"},
	{"claude", "anthropic"},
	{"youtube", "youtube"},
	{"discord", "discord"},
	{"telegram", "telegram"},
	{"instagram", "instagram"},
	{"reddit", "reddit"},
	{"github", "github"},
	{"slack", "slack"},
	{"rapidapi", "rapidapi"},
}

// userCredentialPattern matches {{user.<token>}} template references inside
// step inputs. The token is taken verbatim, whether or not the keyword table
// knows it.
var userCredentialPattern = regexp.MustCompile(`\{\{user\.([a-zA-Z0-9_-]+)\}\}`)

// CredentialRequirementsManager walks a workflow's step tree and reports which
// platform credentials the workflow references.
type CredentialRequirementsManager struct{}

func NewCredentialRequirementsManager() *CredentialRequirementsManager {
	return &CredentialRequirementsManager{}
}

// ExtractPlatforms returns the deduplicated set of platform tokens referenced
// anywhere in the config, sorted so the result is stable across sibling
// reordering. Two rules apply at every step: keyword matches on the module
// path and {{user.<token>}} references inside inputs. Findings from both
// rules are unioned.
func (m *CredentialRequirementsManager) ExtractPlatforms(config domain.WorkflowConfig) []string {
	found := map[string]struct{}{}

	for _, step := range config.Steps {
		m.collectFromStep(step, found, 0)
	}

	platforms := make([]string, 0, len(found))
	for platform := range found {
		platforms = append(platforms, platform)
	}

	sort.Strings(platforms)

	return platforms
}

func (m *CredentialRequirementsManager) collectFromStep(step domain.WorkflowStep, found map[string]struct{}, depth int) {
	if depth > maxStepDepth {
		return
	}

	if step.Module != "" {
		modulePath := strings.ToLower(step.Module)

		for _, entry := range moduleKeywords {
			if strings.Contains(modulePath, entry.keyword) {
				found[entry.platform] = struct{}{}
			}
		}
	}

	if step.Inputs != nil {
		m.collectFromValue(step.Inputs, found, 0)
	}

	for _, child := range step.Then {
		m.collectFromStep(child, found, depth+1)
	}

	for _, child := range step.Else {
		m.collectFromStep(child, found, depth+1)
	}

	for _, child := range step.Steps {
		m.collectFromStep(child, found, depth+1)
	}
}

// collectFromValue scans an arbitrarily nested inputs value for template
// references. Decoded JSON only ever yields strings, numbers, bools, nil,
// []any and map[string]any; the scalar kinds other than string contribute
// nothing.
func (m *CredentialRequirementsManager) collectFromValue(value any, found map[string]struct{}, depth int) {
	if depth > maxStepDepth {
		return
	}

	switch v := value.(type) {
	case string:
		for _, match := range userCredentialPattern.FindAllStringSubmatch(v, -1) {
			found[match[1]] = struct{}{}
		}
	case []any:
		for _, item := range v {
			m.collectFromValue(item, found, depth+1)
		}
	case map[string]any:
		for _, item := range v {
			m.collectFromValue(item, found, depth+1)
		}
	}
}
