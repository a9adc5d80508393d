package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"tally/internal/receipt"
	"tally/internal/receipt/service"
	"tally/pkg/testutil"
)

// HandlerSuite provides shared test setup for receipt handler tests. It uses
// real in-memory components rather than mocks; handler tests validate HTTP
// concerns (parsing, status codes, response envelopes).
type HandlerSuite struct {
	suite.Suite
	router http.Handler
	store  *receipt.MemoryStore
}

func (s *HandlerSuite) SetupTest() {
	s.store = receipt.NewMemoryStore()
	svc := service.New(s.store, nil)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h := New(svc, logger, nil)

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

const targetBody = `{
	"retailer": "Target",
	"purchaseDate": "2022-01-01",
	"purchaseTime": "13:01",
	"items": [
		{"shortDescription": "Mountain Dew 12PK", "price": "6.49"},
		{"shortDescription": "Emils Cheese Pizza", "price": "12.25"},
		{"shortDescription": "Knorr Creamy Chicken", "price": "1.26"},
		{"shortDescription": "Doritos Nacho Cheese", "price": "3.35"},
		{"shortDescription": "   Klarbrunn 12-PK 12 FL OZ  ", "price": "12.00"}
	],
	"total": "35.35"
}`

func (s *HandlerSuite) TestProcess_ValidReceipt() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/receipts/process", targetBody)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]string](s.T(), rr)
	assert.NotEmpty(s.T(), (*resp)["id"])
	assert.Equal(s.T(), 1, s.store.Len())
}

func (s *HandlerSuite) TestProcess_InvalidReceipt() {
	body := `{"retailer": "Target", "purchaseDate": "2022-01-01", "purchaseTime": "13:01", "total": "35.35"}`
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/receipts/process", body)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	assert.Equal(s.T(), "The receipt is invalid. Missing required field: items", errResp["error"])
}

func (s *HandlerSuite) TestProcess_NonJSONContentType() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/receipts/process", targetBody)
	req.Header.Set("Content-Type", "text/plain")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	assert.Equal(s.T(), "Request must be JSON", errResp["error"])
}

func (s *HandlerSuite) TestProcess_MalformedBody() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/receipts/process", "{not json")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	assert.Equal(s.T(), "Request must be JSON", errResp["error"])
}

func (s *HandlerSuite) TestProcess_DuplicateContentKeepsOneId() {
	// Same content, different JSON key order: both submissions must land on
	// the same identifier and the store must not grow.
	reordered := `{
		"total": "35.35",
		"items": [
			{"price": "6.49", "shortDescription": "Mountain Dew 12PK"},
			{"price": "12.25", "shortDescription": "Emils Cheese Pizza"},
			{"price": "1.26", "shortDescription": "Knorr Creamy Chicken"},
			{"price": "3.35", "shortDescription": "Doritos Nacho Cheese"},
			{"price": "12.00", "shortDescription": "   Klarbrunn 12-PK 12 FL OZ  "}
		],
		"purchaseTime": "13:01",
		"purchaseDate": "2022-01-01",
		"retailer": "Target"
	}`

	first := testutil.DoRequest(s.router,
		testutil.NewRequestWithBody(s.T(), http.MethodPost, "/receipts/process", targetBody))
	testutil.AssertStatus(s.T(), first, http.StatusOK)

	second := testutil.DoRequest(s.router,
		testutil.NewRequestWithBody(s.T(), http.MethodPost, "/receipts/process", reordered))
	testutil.AssertStatus(s.T(), second, http.StatusOK)

	firstID := (*testutil.UnmarshalResponse[map[string]string](s.T(), first))["id"]
	secondID := (*testutil.UnmarshalResponse[map[string]string](s.T(), second))["id"]
	assert.Equal(s.T(), firstID, secondID)
	assert.Equal(s.T(), 1, s.store.Len())
}

func (s *HandlerSuite) TestPoints_UnknownID() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/receipts/does-not-exist/points")
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNotFound)
	errResp := testutil.UnmarshalErrorResponse(s.T(), rr)
	assert.Equal(s.T(), "No receipt found for that ID.", errResp["error"])
}

func (s *HandlerSuite) TestEndToEnd_TargetReceiptScores28() {
	processed := testutil.DoRequest(s.router,
		testutil.NewRequestWithBody(s.T(), http.MethodPost, "/receipts/process", targetBody))
	testutil.AssertStatus(s.T(), processed, http.StatusOK)

	id := (*testutil.UnmarshalResponse[map[string]string](s.T(), processed))["id"]
	require.NotEmpty(s.T(), id)

	points := testutil.DoRequest(s.router,
		testutil.NewRequest(s.T(), http.MethodGet, "/receipts/"+id+"/points"))
	testutil.AssertStatus(s.T(), points, http.StatusOK)

	resp := testutil.UnmarshalResponse[map[string]int](s.T(), points)
	assert.Equal(s.T(), 28, (*resp)["points"])
}
