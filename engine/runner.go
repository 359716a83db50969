package engine

import (
	"context"
	"dashkit/utils"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DatasetSpec is everything a single run needs: the source snapshot, the
// endpoint and the query parameters. Stored datasets and ad-hoc requests
// both reduce to this before they reach the runner.
type DatasetSpec struct {
	Name     string
	TenantID uint
	Source   SourceConfig
	Endpoint string
	Params   map[string]string
}

// JoinSpec describes one equi-join between two independently fetched
// datasets.
type JoinSpec struct {
	Left       DatasetSpec
	LeftField  string
	Right      DatasetSpec
	RightField string
	Type       JoinType
}

// Result is either a tabular record set or a raw pass-through of a response
// whose shape couldn't be normalized. The two are distinct on the wire:
// {"data": ...} vs {"result": ...}.
type Result struct {
	Records RecordSet
	Raw     interface{}
	Tabular bool
}

// Runner orchestrates auth resolution, fetch, normalization and the optional
// join for one run. Runs share no mutable state; every invocation is a fresh
// fetch.
type Runner struct {
	fetcher *Fetcher
	now     func() time.Time
}

func NewRunner() *Runner {
	return &Runner{
		fetcher: NewFetcher(),
		now:     time.Now,
	}
}

// RunDataset executes one dataset: resolve auth, fetch, normalize.
func (r *Runner) RunDataset(ctx context.Context, tenantID uint, ds DatasetSpec) (*Result, error) {
	runID := uuid.NewString()
	headers, extra, err := ResolveAuth(ds.Source, r.now())
	if err != nil {
		utils.Logger.Error("error while resolving source auth",
			zap.String("run_id", runID), zap.Uint("tenant_id", tenantID),
			zap.String("dataset", ds.Name), zap.String("err_msg", err.Error()))
		return nil, err
	}
	utils.Logger.Debug("resolved source auth",
		zap.String("run_id", runID), zap.String("auth_type", string(ds.Source.AuthType)),
		zap.String("credential", utils.Redact(credential(ds.Source))))
	params := make(map[string]string, len(ds.Params)+len(extra))
	for key, value := range ds.Params {
		params[key] = value
	}
	for key, value := range extra {
		params[key] = value
	}
	target := JoinURL(ds.Source.BaseURL, ds.Endpoint)
	body, err := r.fetcher.Fetch(ctx, target, headers, params)
	if err != nil {
		utils.Logger.Error("dataset fetch failed",
			zap.String("run_id", runID), zap.Uint("tenant_id", tenantID),
			zap.String("dataset", ds.Name), zap.String("err_msg", err.Error()))
		return nil, err
	}
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("upstream returned invalid JSON: %v", err)}
	}
	records, ok := Normalize(payload)
	if !ok {
		utils.Logger.Info("response shape not tabular, passing through",
			zap.String("run_id", runID), zap.String("dataset", ds.Name))
		return &Result{Raw: payload}, nil
	}
	return &Result{Records: records, Tabular: true}, nil
}

// RunJoin fetches both sides sequentially and joins them. A fetch failure on
// either side aborts the whole join.
func (r *Runner) RunJoin(ctx context.Context, tenantID uint, spec JoinSpec) (*Result, error) {
	left, err := r.joinSide(ctx, tenantID, spec.Left)
	if err != nil {
		return nil, err
	}
	right, err := r.joinSide(ctx, tenantID, spec.Right)
	if err != nil {
		return nil, err
	}
	joined, err := Join(left, spec.LeftField, right, spec.RightField, spec.Type)
	if err != nil {
		return nil, err
	}
	return &Result{Records: joined, Tabular: true}, nil
}

// joinSide runs one participant. A dataset owned by another tenant is
// silently excluded: it contributes an empty side, not an error. The same
// holds for a side whose response couldn't be normalized, since a raw
// pass-through isn't joinable.
func (r *Runner) joinSide(ctx context.Context, tenantID uint, ds DatasetSpec) (RecordSet, error) {
	if ds.TenantID != tenantID {
		return RecordSet{}, nil
	}
	res, err := r.RunDataset(ctx, tenantID, ds)
	if err != nil {
		return nil, err
	}
	if !res.Tabular {
		return RecordSet{}, nil
	}
	return res.Records, nil
}
