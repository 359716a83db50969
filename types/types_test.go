package types

import (
	"testing"
)

func validSourceRequest() CreateDataSourceRequest {
	return CreateDataSourceRequest{
		Name:     "billing-api",
		BaseURL:  "https://billing.example.com/api",
		AuthType: "api_key_header",
		APIKey:   "sk-123",
	}
}

func TestDataSourceRequestValidate(t *testing.T) {
	req := validSourceRequest()
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestDataSourceRequestMissingName(t *testing.T) {
	req := validSourceRequest()
	req.Name = ""
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestDataSourceRequestRelativeBaseURL(t *testing.T) {
	req := validSourceRequest()
	req.BaseURL = "/just/a/path"
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestDataSourceRequestDefaultAuthType(t *testing.T) {
	req := CreateDataSourceRequest{Name: "open", BaseURL: "https://open.example.com"}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
	if req.AuthType != "none" {
		t.Fatalf("expected auth type to default to none, got %q", req.AuthType)
	}
}

func TestDataSourceRequestUnknownAuthType(t *testing.T) {
	req := validSourceRequest()
	req.AuthType = "oauth2"
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for unknown auth type")
	}
}

func TestDataSourceRequestSecretRequirements(t *testing.T) {
	cases := []struct {
		name string
		req  CreateDataSourceRequest
	}{
		{
			"api key header without key",
			CreateDataSourceRequest{Name: "s", BaseURL: "https://s.example.com", AuthType: "api_key_header"},
		},
		{
			"api key query without key",
			CreateDataSourceRequest{Name: "s", BaseURL: "https://s.example.com", AuthType: "api_key_query"},
		},
		{
			"bearer without token",
			CreateDataSourceRequest{Name: "s", BaseURL: "https://s.example.com", AuthType: "bearer"},
		},
		{
			"jwt without secret",
			CreateDataSourceRequest{Name: "s", BaseURL: "https://s.example.com", AuthType: "jwt_hs256",
				JWTSubject: "u", JWTAudience: "a"},
		},
		{
			"jwt without subject",
			CreateDataSourceRequest{Name: "s", BaseURL: "https://s.example.com", AuthType: "jwt_hs256",
				JWTSecret: "k", JWTAudience: "a"},
		},
		{
			"jwt without audience",
			CreateDataSourceRequest{Name: "s", BaseURL: "https://s.example.com", AuthType: "jwt_hs256",
				JWTSecret: "k", JWTSubject: "u"},
		},
	}
	for _, c := range cases {
		if err := c.req.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
	}
}

func TestDataSourceRequestValidateUpdateKeepsStoredSecret(t *testing.T) {
	req := validSourceRequest()
	req.APIKey = ""
	if err := req.ValidateUpdate("stored-key", "", ""); err != nil {
		t.Fatal(err)
	}
	if req.APIKey != "stored-key" {
		t.Fatalf("omitted secret must fall back to stored value, got %q", req.APIKey)
	}
}

func TestDataSourceRequestValidateUpdateReplacesSecret(t *testing.T) {
	req := validSourceRequest()
	req.APIKey = "new-key"
	if err := req.ValidateUpdate("stored-key", "", ""); err != nil {
		t.Fatal(err)
	}
	if req.APIKey != "new-key" {
		t.Fatalf("supplied secret must win over stored value, got %q", req.APIKey)
	}
}

func TestCreateDatasetRequestValidate(t *testing.T) {
	req := CreateDatasetRequest{APISource: 1, Endpoint: "/v1/orders"}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
	req = CreateDatasetRequest{Endpoint: "/v1/orders"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for missing api_source")
	}
	req = CreateDatasetRequest{APISource: 1}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}

func TestAdhocRunRequestValidate(t *testing.T) {
	req := AdhocRunRequest{APISource: 1, Endpoint: "items"}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
	req = AdhocRunRequest{Endpoint: "items"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for missing api_source")
	}
}

func TestChartJoinRequestDefaultsToInner(t *testing.T) {
	req := ChartJoinRequest{LeftDataset: 1, LeftField: "id", RightDataset: 2, RightField: "id"}
	if err := req.Validate(); err != nil {
		t.Fatal(err)
	}
	if req.JoinType != "inner" {
		t.Fatalf("expected inner default, got %q", req.JoinType)
	}
}

func TestChartJoinRequestRejectsUnknownType(t *testing.T) {
	req := ChartJoinRequest{LeftDataset: 1, LeftField: "id", RightDataset: 2, RightField: "id", JoinType: "cross"}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for unknown join type")
	}
}

func TestCreateChartRequestValidatesJoins(t *testing.T) {
	req := CreateChartRequest{
		Name:      "revenue",
		ChartType: "line",
		Joins:     []ChartJoinRequest{{LeftDataset: 1, RightDataset: 2}},
	}
	if err := req.Validate(); err == nil {
		t.Fatal("expected error for join without fields")
	}
}
