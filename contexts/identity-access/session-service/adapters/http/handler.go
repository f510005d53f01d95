package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"taskforge/contexts/identity-access/session-service/application"
	httptransport "taskforge/contexts/identity-access/session-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.TokenPairResponse, error) {
	tokens, err := h.Service.Register(ctx, application.RegisterCommand{
		Email:                   req.Email,
		Password:                req.Password,
		FullName:                req.FullName,
		OrganizationID:          req.OrganizationID,
		OrganizationName:        req.OrganizationName,
		OrganizationDescription: req.OrganizationDescription,
	})
	if err != nil {
		return httptransport.TokenPairResponse{}, err
	}
	return tokenPairResponse(tokens), nil
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.TokenPairResponse, error) {
	tokens, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.TokenPairResponse{}, err
	}
	return tokenPairResponse(tokens), nil
}

func (h Handler) RefreshHandler(ctx context.Context, req httptransport.RefreshRequest) (httptransport.TokenPairResponse, error) {
	tokens, err := h.Service.Refresh(ctx, strings.TrimSpace(req.RefreshToken))
	if err != nil {
		return httptransport.TokenPairResponse{}, err
	}
	return tokenPairResponse(tokens), nil
}

func (h Handler) LogoutHandler(ctx context.Context, req httptransport.LogoutRequest) (httptransport.LogoutResponse, error) {
	if err := h.Service.Logout(ctx, strings.TrimSpace(req.RefreshToken)); err != nil {
		return httptransport.LogoutResponse{}, err
	}
	resp := httptransport.LogoutResponse{Status: "success"}
	resp.Data.Revoked = true
	return resp, nil
}

func (h Handler) MeHandler(ctx context.Context, userID string) (httptransport.MeResponse, error) {
	user, err := h.Service.Profile(ctx, strings.TrimSpace(userID))
	if err != nil {
		return httptransport.MeResponse{}, err
	}
	resp := httptransport.MeResponse{Status: "success"}
	resp.Data.UserID = user.ID
	resp.Data.Email = user.Email
	resp.Data.FullName = user.FullName
	resp.Data.Role = string(user.Role)
	resp.Data.OrganizationID = user.OrganizationID
	return resp, nil
}

func tokenPairResponse(tokens application.AuthTokens) httptransport.TokenPairResponse {
	resp := httptransport.TokenPairResponse{Status: "success"}
	resp.Data.AccessToken = tokens.AccessToken
	resp.Data.RefreshToken = tokens.RefreshToken
	resp.Data.TokenType = tokens.TokenType
	resp.Data.ExpiresAt = tokens.AccessExpiresAt.UTC().Format(time.RFC3339)
	return resp
}
