package http

import (
	"encoding/json"
	stdhttp "net/http"
	"testing"

	"smartfin-backend/internal/testutil/loanmock"
	"smartfin-backend/internal/testutil/paymentmock"
	ucMetrics "smartfin-backend/internal/usecase/metrics"
)

func TestComputeMetrics_BaselinesForNewUser(t *testing.T) {
	engine := ucMetrics.NewEngine(&loanmock.Repo{}, &paymentmock.Repo{}, nil)
	h := NewMetricsHandler(engine)

	rec, c := newLoanRequest(stdhttp.MethodGet, "/users/"+testUserID+"/metrics", nil)
	c.SetParamNames("user_id")
	c.SetParamValues(testUserID)

	if err := h.ComputeMetrics(c); err != nil {
		t.Fatalf("ComputeMetrics error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}

	var dto ucMetrics.SnapshotDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if dto.DiversityScore != 50 || dto.PaymentHistoryScore != 70 || dto.MaturityScore != 50 {
		t.Fatalf("baseline scores: %+v", dto)
	}
	if dto.UserID != testUserID {
		t.Fatalf("user_id = %q", dto.UserID)
	}
}

func TestComputeMetrics_InvalidUserID(t *testing.T) {
	engine := ucMetrics.NewEngine(&loanmock.Repo{}, &paymentmock.Repo{}, nil)
	h := NewMetricsHandler(engine)

	rec, c := newLoanRequest(stdhttp.MethodGet, "/users/short/metrics", nil)
	c.SetParamNames("user_id")
	c.SetParamValues("short")

	if err := h.ComputeMetrics(c); err != nil {
		t.Fatalf("ComputeMetrics error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
