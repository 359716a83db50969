package handlers

import (
	"dashkit/types"
	"dashkit/utils"
	"net/http"
)

// RunMetrics exposes the current run counters for the caller's tenant.
func (h *Handlers) RunMetrics() DashkitHandler {
	return func(ctx *types.Ctx) {
		snapshot := h.Metrics.Snapshot()
		utils.WriteSuccessMsgWithData("ok", http.StatusOK, snapshot[ctx.Claim.TenantID], ctx.Rw)
	}
}
