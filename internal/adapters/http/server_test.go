package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	httpAdapter "github.com/quotedeck/flowkit/internal/adapters/http"
	"github.com/quotedeck/flowkit/internal/metrics"
	"github.com/quotedeck/flowkit/pkg/adapters/memory"
	"github.com/quotedeck/flowkit/pkg/builder"
	"github.com/quotedeck/flowkit/pkg/domain"
	"github.com/quotedeck/flowkit/pkg/ports"
	"github.com/quotedeck/flowkit/pkg/schema"
)

func newTestServer(t *testing.T, opts ...httpAdapter.Option) *httptest.Server {
	t.Helper()
	handler := httpAdapter.NewHandler(memory.NewFlowStore(), memory.NewSessionStore(), opts...)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func intakeFlow(t *testing.T) *domain.Flow {
	t.Helper()
	flow, err := builder.NewFlow("roof-1", "Roof intake", "roofing").
		Question("q_type").Text("Property type?").BindField("property_type").
		Answer("a_res", "Residential", "residential").Go("q_layers").
		Answer("a_com", "Commercial", "commercial").Go("done").
		Question("q_layers").Text("How many layers?").
		Answer("a_one", "One", 1).
		Do(domain.AddLineItem("underlayment", 1)).
		Go("done").
		End("done").
		Start("q_type").
		Build()
	if err != nil {
		t.Fatalf("fixture build failed: %v", err)
	}
	return flow
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case []byte:
		buf.Write(b)
	case nil:
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(into))
}

func createAndPublish(t *testing.T, srv *httptest.Server, flow *domain.Flow) {
	t.Helper()
	doc, err := schema.Encode(flow)
	require.NoError(t, err)

	resp := postJSON(t, srv.URL+"/flows", doc)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/flows/"+flow.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFlowCRUD(t *testing.T) {
	srv := newTestServer(t)
	doc, _ := schema.Encode(intakeFlow(t))

	resp := postJSON(t, srv.URL+"/flows", doc)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/flows/roof-1")
	require.NoError(t, err)
	var flow struct {
		ID   string `json:"flow_id"`
		Name string `json:"name"`
	}
	decodeBody(t, resp, &flow)
	require.Equal(t, "roof-1", flow.ID)
	require.Equal(t, "Roof intake", flow.Name)

	resp, err = http.Get(srv.URL + "/flows")
	require.NoError(t, err)
	var list struct {
		Flows []string `json:"flows"`
	}
	decodeBody(t, resp, &list)
	require.Equal(t, []string{"roof-1"}, list.Flows)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/flows/roof-1", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/flows/roof-1")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateFlow_BadDocument(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/flows", []byte("{corrupt"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// A flow with a dangling answer link.
	broken := intakeFlow(t)
	broken.Nodes["q_layers"].Question.Answers[0].NextNodeID = "nowhere"
	doc, _ := schema.Encode(broken)
	resp := postJSON(t, srv.URL+"/flows", doc)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/flows/roof-1/validate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Valid    bool           `json:"valid"`
		Issues   []domain.Issue `json:"issues"`
		Blocking int            `json:"blocking"`
	}
	decodeBody(t, resp, &result)
	require.False(t, result.Valid)
	require.NotEmpty(t, result.Issues)
	require.Positive(t, result.Blocking)
}

func TestPublishGuard(t *testing.T) {
	srv := newTestServer(t)

	broken := intakeFlow(t)
	broken.Nodes["q_layers"].Question.Answers[0].NextNodeID = "nowhere"
	doc, _ := schema.Encode(broken)
	resp := postJSON(t, srv.URL+"/flows", doc)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/flows/roof-1/publish", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSessionWalk(t *testing.T) {
	srv := newTestServer(t, httpAdapter.WithMetrics(metrics.New()))
	createAndPublish(t, srv, intakeFlow(t))

	resp := postJSON(t, srv.URL+"/flows/roof-1/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var session struct {
		SessionID string `json:"session_id"`
		Prompt    struct {
			NodeID  string `json:"node_id"`
			Answers []struct {
				ID string `json:"answer_id"`
			} `json:"answers"`
		} `json:"prompt"`
	}
	decodeBody(t, resp, &session)
	require.NotEmpty(t, session.SessionID)
	require.Equal(t, "q_type", session.Prompt.NodeID)
	require.Len(t, session.Prompt.Answers, 2)

	answerURL := fmt.Sprintf("%s/sessions/%s/answers", srv.URL, session.SessionID)
	resp = postJSON(t, answerURL, map[string]string{"answer_id": "a_res"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var step struct {
		Prompt struct {
			NodeID string `json:"node_id"`
		} `json:"prompt"`
		State struct {
			Fields map[string]any `json:"fields"`
		} `json:"state"`
	}
	decodeBody(t, resp, &step)
	require.Equal(t, "q_layers", step.Prompt.NodeID)
	require.Equal(t, "residential", step.State.Fields["property_type"])

	resp = postJSON(t, answerURL, map[string]string{"answer_id": "a_one"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var final struct {
		Prompt struct {
			Terminal bool `json:"terminal"`
		} `json:"prompt"`
		Draft *domain.QuoteDraft `json:"draft"`
	}
	decodeBody(t, resp, &final)
	require.True(t, final.Prompt.Terminal)
	require.NotNil(t, final.Draft)
	require.Len(t, final.Draft.LineItems, 1)

	// The terminated session rejects further answers.
	resp = postJSON(t, answerURL, map[string]string{"answer_id": "a_one"})
	resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSession_InvalidAnswer(t *testing.T) {
	srv := newTestServer(t)
	createAndPublish(t, srv, intakeFlow(t))

	resp := postJSON(t, srv.URL+"/flows/roof-1/sessions", nil)
	var session struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, resp, &session)

	answerURL := fmt.Sprintf("%s/sessions/%s/answers", srv.URL, session.SessionID)
	resp = postJSON(t, answerURL, map[string]string{"answer_id": "bogus"})
	resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// The failed submit left the session where it was.
	resp, err := http.Get(srv.URL + "/sessions/" + session.SessionID)
	require.NoError(t, err)
	var current struct {
		State struct {
			CurrentNodeID string `json:"current_node_id"`
		} `json:"state"`
	}
	decodeBody(t, resp, &current)
	require.Equal(t, "q_type", current.State.CurrentNodeID)
}

func TestSession_UnpublishedFlowRefused(t *testing.T) {
	srv := newTestServer(t)
	doc, _ := schema.Encode(intakeFlow(t))
	resp := postJSON(t, srv.URL+"/flows", doc)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/flows/roof-1/sessions", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSession_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/sessions/ghost")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMermaidEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createAndPublish(t, srv, intakeFlow(t))

	resp, err := http.Get(srv.URL + "/flows/roof-1/mermaid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(body.String(), "graph TD"))
	require.Contains(t, body.String(), "q_type")
}

func TestCatalogEndpoints(t *testing.T) {
	catalog := memory.NewCatalog()
	catalog.SeedFields("roofing", []ports.QuoteField{{ID: "roof_area", Name: "Roof area", DataType: "number"}})
	catalog.SeedProducts([]ports.Product{{ID: "underlayment", SKU: "UL-1", Name: "Underlayment"}})

	srv := newTestServer(t, httpAdapter.WithCatalogs(catalog, catalog))

	resp, err := http.Get(srv.URL + "/catalog/fields?trade_id=roofing")
	require.NoError(t, err)
	var fields struct {
		Fields []ports.QuoteField `json:"fields"`
	}
	decodeBody(t, resp, &fields)
	require.Len(t, fields.Fields, 1)

	resp, err = http.Get(srv.URL + "/catalog/products")
	require.NoError(t, err)
	var products struct {
		Products []ports.Product `json:"products"`
	}
	decodeBody(t, resp, &products)
	require.Len(t, products.Products, 1)
}

func TestValidate_CatalogCrossChecks(t *testing.T) {
	catalog := memory.NewCatalog()
	catalog.SeedFields("roofing", []ports.QuoteField{{ID: "known_field", Name: "Known", DataType: "text"}})
	catalog.SeedProducts([]ports.Product{{ID: "known_product", SKU: "K-1", Name: "Known"}})

	srv := newTestServer(t, httpAdapter.WithCatalogs(catalog, catalog))
	createAndPublish(t, srv, intakeFlow(t)) // binds property_type, adds underlayment

	resp := postJSON(t, srv.URL+"/flows/roof-1/validate", nil)
	var result struct {
		Valid  bool           `json:"valid"`
		Issues []domain.Issue `json:"issues"`
	}
	decodeBody(t, resp, &result)

	// Catalog mismatches are warnings: the flow stays publishable.
	require.True(t, result.Valid)
	var kinds []domain.IssueKind
	for _, i := range result.Issues {
		kinds = append(kinds, i.Kind)
	}
	require.Contains(t, kinds, httpAdapter.IssueUnknownCatalogRef)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, httpAdapter.WithMetrics(metrics.New()))
	createAndPublish(t, srv, intakeFlow(t))
	resp := postJSON(t, srv.URL+"/flows/roof-1/sessions", nil)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body bytes.Buffer
	_, err = body.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.Contains(t, body.String(), "flowkit_sessions_started_total")
}
