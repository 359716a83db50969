package types

import (
	"dashkit/engine"
	"dashkit/models"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt"
)

var (
	ErrNotExist     = errors.New("items not exist")
	ErrAlreadyExist = errors.New("item with the same name already exist")
)

type Claim struct {
	UserName string
	UserID   uint
	TenantID uint
	jwt.StandardClaims
}

type Ctx struct {
	Rw    http.ResponseWriter
	R     *http.Request
	Claim *Claim
}

// CreateDataSourceRequest carries the full data source definition. Secret
// fields are write-only; list responses never echo them back.
type CreateDataSourceRequest struct {
	Name          string `json:"name"`
	BaseURL       string `json:"baseUrl"`
	AuthType      string `json:"authType"`
	APIKey        string `json:"apiKey"`
	APIKeyName    string `json:"apiKeyName"`
	BearerToken   string `json:"bearerToken"`
	JWTSecret     string `json:"jwtSecret"`
	JWTSubject    string `json:"jwtSubject"`
	JWTAudience   string `json:"jwtAudience"`
	JWTIssuer     string `json:"jwtIssuer"`
	JWTTTLSeconds int    `json:"jwtTtlSeconds"`
}

func (c *CreateDataSourceRequest) Validate() error {
	if c.Name == "" {
		return errors.New("data source name is a required field")
	}
	if c.BaseURL == "" {
		return errors.New("base url is a required field")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || !parsed.IsAbs() {
		return errors.New("base url must be an absolute url")
	}
	if c.AuthType == "" {
		c.AuthType = string(engine.AuthNone)
	}
	valid := false
	for _, authType := range engine.AuthTypes {
		if string(authType) == c.AuthType {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("auth type %q is not valid", c.AuthType)
	}
	return c.validateSecrets()
}

// validateSecrets enforces the one-secret-group-per-auth-type invariant.
// Empty string is treated as absent.
func (c *CreateDataSourceRequest) validateSecrets() error {
	switch engine.AuthType(c.AuthType) {
	case engine.AuthNone:
	case engine.AuthAPIKeyHeader, engine.AuthAPIKeyQuery:
		if c.APIKey == "" {
			return errors.New("api key is required for the api key auth types")
		}
	case engine.AuthBearer:
		if c.BearerToken == "" {
			return errors.New("bearer token is required for the bearer auth type")
		}
	case engine.AuthJWTHS256:
		if c.JWTSecret == "" || c.JWTSubject == "" || c.JWTAudience == "" {
			return errors.New("jwt secret, subject and audience are required for the jwt_hs256 auth type")
		}
	}
	return nil
}

// ValidateUpdate applies the same rules but lets a stored secret satisfy the
// requirement when the request omits the field.
func (c *CreateDataSourceRequest) ValidateUpdate(storedAPIKey, storedBearer, storedJWTSecret string) error {
	if c.APIKey == "" {
		c.APIKey = storedAPIKey
	}
	if c.BearerToken == "" {
		c.BearerToken = storedBearer
	}
	if c.JWTSecret == "" {
		c.JWTSecret = storedJWTSecret
	}
	return c.Validate()
}

type CreateDatasetRequest struct {
	Name        string            `json:"name"`
	APISource   uint              `json:"api_source"`
	Endpoint    string            `json:"endpoint"`
	QueryParams map[string]string `json:"query_params"`
}

func (c *CreateDatasetRequest) Validate() error {
	if c.APISource == 0 {
		return errors.New("api_source is a required field")
	}
	if c.Endpoint == "" {
		return errors.New("endpoint is a required field")
	}
	return nil
}

func (c *CreateDatasetRequest) Model() *models.Dataset {
	params, _ := json.Marshal(c.QueryParams)
	return &models.Dataset{
		Name:        c.Name,
		Endpoint:    c.Endpoint,
		QueryParams: params,
	}
}

// AdhocRunRequest is the body of a run-now-without-saving request.
type AdhocRunRequest struct {
	APISource   uint              `json:"api_source"`
	Endpoint    string            `json:"endpoint"`
	QueryParams map[string]string `json:"query_params"`
}

func (a *AdhocRunRequest) Validate() error {
	if a.APISource == 0 || a.Endpoint == "" {
		return errors.New("api_source and endpoint are required for ad-hoc run")
	}
	return nil
}

type ChartJoinRequest struct {
	LeftDataset  uint   `json:"left_dataset"`
	LeftField    string `json:"left_field"`
	RightDataset uint   `json:"right_dataset"`
	RightField   string `json:"right_field"`
	JoinType     string `json:"type"`
	OnCondition  string `json:"on_condition"`
}

func (c *ChartJoinRequest) Validate() error {
	if c.LeftDataset == 0 || c.RightDataset == 0 {
		return errors.New("both join datasets are required")
	}
	if c.LeftField == "" || c.RightField == "" {
		return errors.New("both join fields are required")
	}
	if c.JoinType == "" {
		c.JoinType = string(engine.JoinInner)
	}
	switch engine.JoinType(c.JoinType) {
	case engine.JoinInner, engine.JoinLeft, engine.JoinRight:
	default:
		return fmt.Errorf("join type %q is not valid", c.JoinType)
	}
	return nil
}

type CreateChartRequest struct {
	Name        string             `json:"name"`
	ChartType   string             `json:"chartType"`
	DatasetID   *uint              `json:"dataset"`
	XField      string             `json:"xField"`
	YField      string             `json:"yField"`
	Aggregation string             `json:"aggregation"`
	InlineData  json.RawMessage    `json:"inlineData"`
	Joins       []ChartJoinRequest `json:"joins"`
}

func (c *CreateChartRequest) Validate() error {
	if c.Name == "" {
		return errors.New("chart name is a required field")
	}
	if c.ChartType == "" {
		return errors.New("chart type is a required field")
	}
	for i := range c.Joins {
		if err := c.Joins[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

type CreateDashboardRequest struct {
	Name string `json:"name"`
}

func (c *CreateDashboardRequest) Validate() error {
	if c.Name == "" {
		return errors.New("dashboard name is a required field")
	}
	return nil
}

type AddChartRequest struct {
	ChartID uint            `json:"chart_id"`
	Layout  json.RawMessage `json:"layout"`
	Order   int             `json:"order"`
}

func (a *AddChartRequest) Validate() error {
	if a.ChartID == 0 {
		return errors.New("chart_id is a required field")
	}
	return nil
}
