package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      int
		wantIssue bool
	}{
		{name: "absent uses fallback", query: "", want: 10},
		{name: "in range", query: "limit=25", want: 25},
		{name: "upper bound inclusive", query: "limit=100", want: 100},
		{name: "above max", query: "limit=101", want: 10, wantIssue: true},
		{name: "below min", query: "limit=0", want: 10, wantIssue: true},
		{name: "not a number", query: "limit=ten", want: 10, wantIssue: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/employees/?"+tc.query, nil)
			v := NewValidator()
			got := QueryInt(req, v, "limit", 10, 1, 100)
			if got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
			if v.HasIssues() != tc.wantIssue {
				t.Fatalf("issues mismatch: %+v", v.Issues())
			}
		})
	}
}

func TestValidatorReject(t *testing.T) {
	v := NewValidator()
	v.Required("skill", " ", "field required")
	v.Add("limit", "must be an integer")

	rec := httptest.NewRecorder()
	if !v.Reject(rec) {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	var body struct {
		Detail []ValidationIssue `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Detail) != 2 || body.Detail[0].Field != "limit" || body.Detail[1].Field != "skill" {
		t.Fatalf("expected sorted issues, got %+v", body.Detail)
	}

	if NewValidator().Reject(httptest.NewRecorder()) {
		t.Fatal("empty validator must not reject")
	}
}
