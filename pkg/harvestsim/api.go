// Package harvestsim is the public facade over the projection engine and the
// scenario store.
package harvestsim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"harvestsim/internal/config"
	"harvestsim/internal/model"
	"harvestsim/internal/popdyn"
	"harvestsim/internal/storage"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ConfigPath string
}

type Client struct {
	cfg   config.Config
	store storage.Store
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(opts.StoreKind) != "" {
		cfg.Store.Kind = opts.StoreKind
	}
	if strings.TrimSpace(opts.DBPath) != "" {
		cfg.Store.Path = opts.DBPath
	}

	store, err := storage.NewStore(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Config reports the effective configuration the client was built with.
func (c *Client) Config() config.Config {
	return c.cfg
}

// ProjectRequest describes one batch projection. Zero-valued Biology and
// Horizon fall back to the configured defaults.
type ProjectRequest struct {
	Biology *model.Biology
	Mode    string
	Harvest [3]float64
	Horizon int
}

type ProjectResult struct {
	Mode       popdyn.Mode
	Harvest    popdyn.Params
	Horizon    int
	Series     []model.Point
	FinalTotal float64
}

// Project runs a batch projection. The mode is validated up front and the
// harvest parameters are clamped to its domain.
func (c *Client) Project(req ProjectRequest) (ProjectResult, error) {
	mode, err := popdyn.ParseMode(req.Mode)
	if err != nil {
		return ProjectResult{}, err
	}
	h, err := popdyn.NewHarvest(mode, popdyn.Params(req.Harvest))
	if err != nil {
		return ProjectResult{}, err
	}

	bio := c.cfg.Biology
	if req.Biology != nil {
		if err := config.ValidateBiology(*req.Biology); err != nil {
			return ProjectResult{}, err
		}
		bio = *req.Biology
	}
	horizon := req.Horizon
	if horizon <= 0 {
		horizon = c.cfg.Horizon
	}

	series := popdyn.New(bio).Project(h, horizon)
	return ProjectResult{
		Mode:       mode,
		Harvest:    h.Params,
		Horizon:    horizon,
		Series:     series,
		FinalTotal: series[len(series)-1].Stages.Total(),
	}, nil
}

// SaveScenarioRequest names a reusable parameter preset. A nil Biology saves
// the configured defaults.
type SaveScenarioRequest struct {
	Name        string
	Description string
	Biology     *model.Biology
	Mode        string
	Harvest     [3]float64
	Horizon     int
}

func (c *Client) SaveScenario(ctx context.Context, req SaveScenarioRequest) (model.Scenario, error) {
	if strings.TrimSpace(req.Name) == "" {
		return model.Scenario{}, fmt.Errorf("scenario name is required")
	}
	mode, err := popdyn.ParseMode(req.Mode)
	if err != nil {
		return model.Scenario{}, err
	}

	bio := c.cfg.Biology
	if req.Biology != nil {
		if err := config.ValidateBiology(*req.Biology); err != nil {
			return model.Scenario{}, err
		}
		bio = *req.Biology
	}
	horizon := req.Horizon
	if horizon <= 0 {
		horizon = c.cfg.Horizon
	}

	scenario := model.Scenario{
		VersionedRecord: storage.NewVersionedRecord(),
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		Biology:         bio,
		Mode:            mode.String(),
		Harvest:         [3]float64(mode.Clamp(popdyn.Params(req.Harvest))),
		Horizon:         horizon,
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.store.SaveScenario(ctx, scenario); err != nil {
		return model.Scenario{}, err
	}
	return scenario, nil
}

func (c *Client) GetScenario(ctx context.Context, id string) (model.Scenario, bool, error) {
	return c.store.GetScenario(ctx, id)
}

func (c *Client) ListScenarios(ctx context.Context) ([]model.Scenario, error) {
	return c.store.ListScenarios(ctx)
}

func (c *Client) DeleteScenario(ctx context.Context, id string) error {
	return c.store.DeleteScenario(ctx, id)
}

// ProjectScenario replays a stored preset.
func (c *Client) ProjectScenario(ctx context.Context, id string) (ProjectResult, error) {
	scenario, ok, err := c.store.GetScenario(ctx, id)
	if err != nil {
		return ProjectResult{}, err
	}
	if !ok {
		return ProjectResult{}, fmt.Errorf("scenario %s not found", id)
	}
	bio := scenario.Biology
	return c.Project(ProjectRequest{
		Biology: &bio,
		Mode:    scenario.Mode,
		Harvest: scenario.Harvest,
		Horizon: scenario.Horizon,
	})
}
