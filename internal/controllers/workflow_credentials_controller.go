package controllers

import (
	"errors"

	"github.com/taskloom/taskloom/internal/managers"
	"github.com/taskloom/taskloom/internal/middlewares"
	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// WorkflowCredentialsController answers which credentials a workflow needs and
// whether the requesting user has them connected.
type WorkflowCredentialsController struct {
	workflowRepository  domain.WorkflowRepository
	requirementsManager *managers.CredentialRequirementsManager
	statusManager       *managers.CredentialStatusManager
}

type WorkflowCredentialsControllerDependencies struct {
	WorkflowRepository  domain.WorkflowRepository
	RequirementsManager *managers.CredentialRequirementsManager
	StatusManager       *managers.CredentialStatusManager
}

func NewWorkflowCredentialsController(deps WorkflowCredentialsControllerDependencies) *WorkflowCredentialsController {
	return &WorkflowCredentialsController{
		workflowRepository:  deps.WorkflowRepository,
		requirementsManager: deps.RequirementsManager,
		statusManager:       deps.StatusManager,
	}
}

type GetWorkflowCredentialsResponse struct {
	Credentials []domain.CredentialStatus `json:"credentials"`
}

// GetWorkflowCredentials handles GET /workflows/:workflowID/credentials.
//
// A malformed persisted config is the one failure surfaced to the caller; it
// means the stored workflow is corrupted. Every other resolution failure is
// logged and answered with an empty credential list so the UI renders "nothing
// required" instead of an error state.
func (c *WorkflowCredentialsController) GetWorkflowCredentials(ctx fiber.Ctx) error {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	}

	workflowID := ctx.Params("workflowID")

	workflow, err := c.workflowRepository.GetWorkflowForUser(ctx.RequestCtx(), workflowID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrWorkflowNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Workflow not found")
		}

		log.Error().Err(err).Str("workflow_id", workflowID).Msg("Failed to load workflow")

		return ctx.JSON(GetWorkflowCredentialsResponse{Credentials: []domain.CredentialStatus{}})
	}

	config, err := domain.ParseWorkflowConfig(workflow.Config)
	if err != nil {
		log.Error().Err(err).Str("workflow_id", workflowID).Msg("Persisted workflow config failed to parse")

		return fiber.NewError(fiber.StatusInternalServerError, "Workflow config is invalid")
	}

	platforms := c.requirementsManager.ExtractPlatforms(config)

	statuses, err := c.statusManager.ResolveStatuses(ctx.RequestCtx(), userID, platforms)
	if err != nil {
		log.Error().
			Err(err).
			Str("workflow_id", workflowID).
			Str("user_id", userID).
			Msg("Credential status resolution failed, returning empty credential list")

		return ctx.JSON(GetWorkflowCredentialsResponse{Credentials: []domain.CredentialStatus{}})
	}

	return ctx.JSON(GetWorkflowCredentialsResponse{Credentials: statuses})
}
