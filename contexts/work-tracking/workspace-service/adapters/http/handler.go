package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taskforge/contexts/work-tracking/workspace-service/application"
	httptransport "taskforge/contexts/work-tracking/workspace-service/transport/http"
	"taskforge/internal/shared/access"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListOrganizationsHandler(ctx context.Context) (httptransport.OrganizationsResponse, error) {
	items, err := h.Service.ListOrganizations(ctx)
	if err != nil {
		return httptransport.OrganizationsResponse{}, err
	}
	resp := httptransport.OrganizationsResponse{Status: "success"}
	for _, item := range items {
		resp.Data.Organizations = append(resp.Data.Organizations, struct {
			ID          string `json:"id"`
			Name        string `json:"name"`
			Description string `json:"description"`
			CreatedAt   string `json:"created_at"`
		}{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) CreateProjectHandler(ctx context.Context, identity access.Identity, req httptransport.CreateProjectRequest) (httptransport.ProjectResponse, error) {
	item, err := h.Service.CreateProject(ctx, identity, req.Name, req.Description)
	if err != nil {
		return httptransport.ProjectResponse{}, err
	}
	resp := httptransport.ProjectResponse{Status: "success"}
	resp.Data.ID = item.ID
	resp.Data.OrganizationID = item.OrganizationID
	resp.Data.Name = item.Name
	resp.Data.Description = item.Description
	resp.Data.CreatedBy = item.CreatedBy
	resp.Data.CreatedAt = item.CreatedAt.UTC().Format(time.RFC3339)
	return resp, nil
}

func (h Handler) ListProjectsHandler(ctx context.Context, identity access.Identity) (httptransport.ProjectsResponse, error) {
	items, err := h.Service.ListProjects(ctx, identity)
	if err != nil {
		return httptransport.ProjectsResponse{}, err
	}
	resp := httptransport.ProjectsResponse{Status: "success"}
	for _, item := range items {
		resp.Data.Projects = append(resp.Data.Projects, struct {
			ID             string `json:"id"`
			OrganizationID string `json:"organization_id"`
			Name           string `json:"name"`
			Description    string `json:"description"`
			CreatedBy      string `json:"created_by"`
			CreatedAt      string `json:"created_at"`
		}{
			ID:             item.ID,
			OrganizationID: item.OrganizationID,
			Name:           item.Name,
			Description:    item.Description,
			CreatedBy:      item.CreatedBy,
			CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) DeleteProjectHandler(ctx context.Context, identity access.Identity, projectID string) (httptransport.DeletedResponse, error) {
	if err := h.Service.DeleteProject(ctx, identity, strings.TrimSpace(projectID)); err != nil {
		return httptransport.DeletedResponse{}, err
	}
	resp := httptransport.DeletedResponse{Status: "success"}
	resp.Data.Deleted = true
	return resp, nil
}

func (h Handler) AddMemberHandler(ctx context.Context, identity access.Identity, projectID string, userID string) (httptransport.MemberChangedResponse, error) {
	projectID = strings.TrimSpace(projectID)
	userID = strings.TrimSpace(userID)
	if err := h.Service.AddMember(ctx, identity, projectID, userID); err != nil {
		return httptransport.MemberChangedResponse{}, err
	}
	resp := httptransport.MemberChangedResponse{Status: "success"}
	resp.Data.ProjectID = projectID
	resp.Data.UserID = userID
	return resp, nil
}

func (h Handler) RemoveMemberHandler(ctx context.Context, identity access.Identity, projectID string, userID string) (httptransport.MemberChangedResponse, error) {
	projectID = strings.TrimSpace(projectID)
	userID = strings.TrimSpace(userID)
	if err := h.Service.RemoveMember(ctx, identity, projectID, userID); err != nil {
		return httptransport.MemberChangedResponse{}, err
	}
	resp := httptransport.MemberChangedResponse{Status: "success"}
	resp.Data.ProjectID = projectID
	resp.Data.UserID = userID
	return resp, nil
}

func (h Handler) ListMembersHandler(ctx context.Context, identity access.Identity, projectID string) (httptransport.MembersResponse, error) {
	items, err := h.Service.ListMembers(ctx, identity, strings.TrimSpace(projectID))
	if err != nil {
		return httptransport.MembersResponse{}, err
	}
	resp := httptransport.MembersResponse{Status: "success"}
	for _, item := range items {
		resp.Data.Members = append(resp.Data.Members, struct {
			UserID  string `json:"user_id"`
			AddedAt string `json:"added_at"`
		}{
			UserID:  item.UserID,
			AddedAt: item.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
