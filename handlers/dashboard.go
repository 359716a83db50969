package handlers

import (
	"dashkit/models"
	"dashkit/types"
	"dashkit/utils"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func (h *Handlers) CreateDashboard() DashkitHandler {
	return func(ctx *types.Ctx) {
		req := &types.CreateDashboardRequest{}
		if err := json.NewDecoder(ctx.R.Body).Decode(req); err != nil {
			utils.WriteErrorMsg("invalid json", http.StatusBadRequest, ctx.Rw)
			return
		}
		if err := req.Validate(); err != nil {
			utils.WriteErrorMsg(err.Error(), http.StatusBadRequest, ctx.Rw)
			return
		}
		dashboard := &models.Dashboard{
			TenantID: ctx.Claim.TenantID,
			Name:     req.Name,
		}
		if err := h.Store.CreateDashboard(dashboard); err != nil {
			utils.Logger.Error("error while creating dashboard", zap.String("err_msg", err.Error()))
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("dashboard created", http.StatusOK, dashboard, ctx.Rw)
	}
}

func (h *Handlers) GetDashboards() DashkitHandler {
	return func(ctx *types.Ctx) {
		dashboards, err := h.Store.GetDashboards(ctx.Claim.TenantID)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("ok", http.StatusOK, dashboards, ctx.Rw)
	}
}

func (h *Handlers) AddChartToDashboard() DashkitHandler {
	return func(ctx *types.Ctx) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		req := &types.AddChartRequest{}
		if err := json.NewDecoder(ctx.R.Body).Decode(req); err != nil {
			utils.WriteErrorMsg("invalid json", http.StatusBadRequest, ctx.Rw)
			return
		}
		if err := req.Validate(); err != nil {
			utils.WriteErrorMsg(err.Error(), http.StatusBadRequest, ctx.Rw)
			return
		}
		dashboard, err := h.Store.GetDashboardByID(ctx.Claim.TenantID, id)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		// the chart has to belong to the same tenant as the dashboard.
		chart, err := h.Store.GetChartByID(ctx.Claim.TenantID, req.ChartID)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		placement := &models.DashboardChart{
			DashboardID: dashboard.ID,
			ChartID:     chart.ID,
			Layout:      []byte(req.Layout),
			Order:       req.Order,
		}
		if err := h.Store.AddChartToDashboard(placement); err != nil {
			utils.Logger.Error("error while placing chart on dashboard", zap.String("err_msg", err.Error()))
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("chart added", http.StatusOK, placement, ctx.Rw)
	}
}
