package handlers

import (
	"dashkit/engine"
	"dashkit/models"
	"dashkit/types"
	"dashkit/utils"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func (h *Handlers) CreateChart() DashkitHandler {
	return func(ctx *types.Ctx) {
		req := &types.CreateChartRequest{}
		if err := json.NewDecoder(ctx.R.Body).Decode(req); err != nil {
			utils.WriteErrorMsg("invalid json", http.StatusBadRequest, ctx.Rw)
			return
		}
		if err := req.Validate(); err != nil {
			utils.WriteErrorMsg(err.Error(), http.StatusBadRequest, ctx.Rw)
			return
		}
		chart := &models.Chart{
			TenantID:    ctx.Claim.TenantID,
			Name:        req.Name,
			ChartType:   req.ChartType,
			DatasetID:   req.DatasetID,
			XField:      req.XField,
			YField:      req.YField,
			Aggregation: req.Aggregation,
			InlineData:  []byte(req.InlineData),
		}
		for _, join := range req.Joins {
			chart.Joins = append(chart.Joins, models.ChartJoin{
				LeftDatasetID:  join.LeftDataset,
				LeftField:      join.LeftField,
				RightDatasetID: join.RightDataset,
				RightField:     join.RightField,
				JoinType:       join.JoinType,
				OnCondition:    join.OnCondition,
			})
		}
		if err := h.Store.CreateChart(chart); err != nil {
			utils.Logger.Error("error while creating chart", zap.String("err_msg", err.Error()))
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("chart created", http.StatusOK, chart, ctx.Rw)
	}
}

func (h *Handlers) GetCharts() DashkitHandler {
	return func(ctx *types.Ctx) {
		charts, err := h.Store.GetCharts(ctx.Claim.TenantID)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("ok", http.StatusOK, charts, ctx.Rw)
	}
}

func (h *Handlers) DeleteChart() DashkitHandler {
	return func(ctx *types.Ctx) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		if err := h.Store.DeleteChart(ctx.Claim.TenantID, id); err != nil {
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsg("chart deleted", http.StatusOK, ctx.Rw)
	}
}

// RunChart resolves what the chart is backed by, in priority order: inline
// uploaded rows, dataset joins, a single dataset.
func (h *Handlers) RunChart() DashkitHandler {
	return func(ctx *types.Ctx) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		chart, err := h.Store.GetChartByID(ctx.Claim.TenantID, id)
		if err != nil {
			writeRunError(err, ctx.Rw)
			return
		}
		if len(chart.InlineData) != 0 {
			var rows interface{}
			if err := json.Unmarshal(chart.InlineData, &rows); err != nil {
				utils.Logger.Error("chart carries malformed inline data",
					zap.Uint("chart_id", chart.ID), zap.String("err_msg", err.Error()))
				utils.WriteJSON(map[string]string{"error": "inline data is malformed"}, http.StatusInternalServerError, ctx.Rw)
				return
			}
			utils.WriteJSON(map[string]interface{}{"data": rows}, http.StatusOK, ctx.Rw)
			return
		}
		if len(chart.Joins) > 0 {
			h.runChartJoin(ctx, chart)
			return
		}
		if chart.DatasetID != nil {
			dataset, err := h.Store.GetDatasetByID(ctx.Claim.TenantID, *chart.DatasetID)
			if err != nil {
				writeRunError(err, ctx.Rw)
				return
			}
			h.runAndRespond(ctx, dataset.Spec())
			return
		}
		utils.WriteJSON(map[string]string{"error": "chart has no dataset, joins, or inline data"}, http.StatusBadRequest, ctx.Rw)
	}
}

// runChartJoin executes the chart's first join. Additional joins are stored
// but not chained.
func (h *Handlers) runChartJoin(ctx *types.Ctx, chart *models.Chart) {
	join := chart.Joins[0]
	left, err := h.Store.GetDatasetAnyTenant(join.LeftDatasetID)
	if err != nil {
		writeRunError(err, ctx.Rw)
		return
	}
	right, err := h.Store.GetDatasetAnyTenant(join.RightDatasetID)
	if err != nil {
		writeRunError(err, ctx.Rw)
		return
	}
	spec := engine.JoinSpec{
		Left:       left.Spec(),
		LeftField:  join.LeftField,
		Right:      right.Spec(),
		RightField: join.RightField,
		Type:       engine.JoinType(join.JoinType),
	}
	start := time.Now()
	res, err := h.Runner.RunJoin(ctx.R.Context(), ctx.Claim.TenantID, spec)
	h.Metrics.ObserveRun(ctx.Claim.TenantID, chart.Name, time.Since(start), err)
	if err != nil {
		writeRunError(err, ctx.Rw)
		return
	}
	utils.WriteJSON(map[string]interface{}{"data": res.Records}, http.StatusOK, ctx.Rw)
}
