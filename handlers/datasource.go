package handlers

import (
	"dashkit/models"
	"dashkit/types"
	"dashkit/utils"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

func (h *Handlers) CreateDataSource() DashkitHandler {
	return func(ctx *types.Ctx) {
		req := &types.CreateDataSourceRequest{}
		if err := json.NewDecoder(ctx.R.Body).Decode(req); err != nil {
			utils.WriteErrorMsg("invalid json", http.StatusBadRequest, ctx.Rw)
			return
		}
		if err := req.Validate(); err != nil {
			utils.WriteErrorMsg(err.Error(), http.StatusBadRequest, ctx.Rw)
			return
		}
		source := sourceFromRequest(req)
		source.TenantID = ctx.Claim.TenantID
		if err := h.Store.CreateDataSource(source); err != nil {
			utils.Logger.Error("error while creating data source", zap.String("err_msg", err.Error()))
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("data source created", http.StatusOK, source, ctx.Rw)
	}
}

func (h *Handlers) GetDataSources() DashkitHandler {
	return func(ctx *types.Ctx) {
		sources, err := h.Store.GetDataSources(ctx.Claim.TenantID)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("ok", http.StatusOK, sources, ctx.Rw)
	}
}

func (h *Handlers) UpdateDataSource() DashkitHandler {
	return func(ctx *types.Ctx) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		source, err := h.Store.GetDataSourceByID(ctx.Claim.TenantID, id)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		req := &types.CreateDataSourceRequest{}
		if err := json.NewDecoder(ctx.R.Body).Decode(req); err != nil {
			utils.WriteErrorMsg("invalid json", http.StatusBadRequest, ctx.Rw)
			return
		}
		// an omitted secret keeps the stored one.
		if err := req.ValidateUpdate(source.APIKey, source.BearerToken, source.JWTSecret); err != nil {
			utils.WriteErrorMsg(err.Error(), http.StatusBadRequest, ctx.Rw)
			return
		}
		updated := sourceFromRequest(req)
		updated.ID = source.ID
		updated.TenantID = source.TenantID
		updated.CreatedAt = source.CreatedAt
		if err := h.Store.UpdateDataSource(updated); err != nil {
			utils.Logger.Error("error while updating data source", zap.String("err_msg", err.Error()))
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("data source updated", http.StatusOK, updated, ctx.Rw)
	}
}

func (h *Handlers) DeleteDataSource() DashkitHandler {
	return func(ctx *types.Ctx) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		if err := h.Store.DeleteDataSource(ctx.Claim.TenantID, id); err != nil {
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsg("data source deleted", http.StatusOK, ctx.Rw)
	}
}

// sourceFromRequest maps a validated request onto the model. The trailing
// slash comes off the base url here, once, at write time.
func sourceFromRequest(req *types.CreateDataSourceRequest) *models.DataSource {
	return &models.DataSource{
		Name:          req.Name,
		BaseURL:       strings.TrimRight(req.BaseURL, "/"),
		AuthType:      req.AuthType,
		APIKey:        req.APIKey,
		APIKeyName:    req.APIKeyName,
		BearerToken:   req.BearerToken,
		JWTSecret:     req.JWTSecret,
		JWTSubject:    req.JWTSubject,
		JWTAudience:   req.JWTAudience,
		JWTIssuer:     req.JWTIssuer,
		JWTTTLSeconds: req.JWTTTLSeconds,
	}
}
