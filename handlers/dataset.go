package handlers

import (
	"dashkit/engine"
	"dashkit/types"
	"dashkit/utils"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func (h *Handlers) CreateDataset() DashkitHandler {
	return func(ctx *types.Ctx) {
		req := &types.CreateDatasetRequest{}
		if err := json.NewDecoder(ctx.R.Body).Decode(req); err != nil {
			utils.WriteErrorMsg("invalid json", http.StatusBadRequest, ctx.Rw)
			return
		}
		if err := req.Validate(); err != nil {
			utils.WriteErrorMsg(err.Error(), http.StatusBadRequest, ctx.Rw)
			return
		}
		// the source has to exist and belong to the tenant before we store
		// a dataset pointing at it.
		source, err := h.Store.GetDataSourceByID(ctx.Claim.TenantID, req.APISource)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		dataset := req.Model()
		dataset.TenantID = ctx.Claim.TenantID
		dataset.DataSourceID = source.ID
		if err := h.Store.CreateDataset(dataset); err != nil {
			utils.Logger.Error("error while creating dataset", zap.String("err_msg", err.Error()))
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("dataset created", http.StatusOK, dataset, ctx.Rw)
	}
}

func (h *Handlers) GetDatasets() DashkitHandler {
	return func(ctx *types.Ctx) {
		datasets, err := h.Store.GetDatasets(ctx.Claim.TenantID)
		if err != nil {
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsgWithData("ok", http.StatusOK, datasets, ctx.Rw)
	}
}

func (h *Handlers) DeleteDataset() DashkitHandler {
	return func(ctx *types.Ctx) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		if err := h.Store.DeleteDataset(ctx.Claim.TenantID, id); err != nil {
			handleErr(err, ctx)
			return
		}
		utils.WriteSuccessMsg("dataset deleted", http.StatusOK, ctx.Rw)
	}
}

func (h *Handlers) RunDataset() DashkitHandler {
	return func(ctx *types.Ctx) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}
		dataset, err := h.Store.GetDatasetByID(ctx.Claim.TenantID, id)
		if err != nil {
			writeRunError(err, ctx.Rw)
			return
		}
		h.runAndRespond(ctx, dataset.Spec())
	}
}

// AdhocRun executes a dataset definition straight from the request body
// without persisting anything.
func (h *Handlers) AdhocRun() DashkitHandler {
	return func(ctx *types.Ctx) {
		req := &types.AdhocRunRequest{}
		if err := json.NewDecoder(ctx.R.Body).Decode(req); err != nil {
			utils.WriteJSON(map[string]string{"error": "invalid json"}, http.StatusBadRequest, ctx.Rw)
			return
		}
		if err := req.Validate(); err != nil {
			utils.WriteJSON(map[string]string{"error": err.Error()}, http.StatusBadRequest, ctx.Rw)
			return
		}
		source, err := h.Store.GetDataSourceByID(ctx.Claim.TenantID, req.APISource)
		if err != nil {
			writeRunError(err, ctx.Rw)
			return
		}
		h.runAndRespond(ctx, engine.DatasetSpec{
			Name:     "__adhoc__",
			TenantID: ctx.Claim.TenantID,
			Source:   source.Config(),
			Endpoint: req.Endpoint,
			Params:   req.QueryParams,
		})
	}
}

// runAndRespond executes the spec and writes the public run response shape:
// {"data": records} for tabular results, {"result": value} for raw
// pass-throughs, {"error": message} on failure.
func (h *Handlers) runAndRespond(ctx *types.Ctx, spec engine.DatasetSpec) {
	start := time.Now()
	res, err := h.Runner.RunDataset(ctx.R.Context(), ctx.Claim.TenantID, spec)
	h.Metrics.ObserveRun(ctx.Claim.TenantID, spec.Name, time.Since(start), err)
	if err != nil {
		writeRunError(err, ctx.Rw)
		return
	}
	if !res.Tabular {
		utils.WriteJSON(map[string]interface{}{"result": res.Raw}, http.StatusOK, ctx.Rw)
		return
	}
	utils.WriteJSON(map[string]interface{}{"data": res.Records}, http.StatusOK, ctx.Rw)
}
