package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Succession-Service-Backend/internal/api/handlers"
	"github.com/ndewijer/Succession-Service-Backend/internal/api/request"
	"github.com/ndewijer/Succession-Service-Backend/internal/model"
	"github.com/ndewijer/Succession-Service-Backend/internal/service"
	"github.com/ndewijer/Succession-Service-Backend/internal/testutil"
)

func newDependantHandler(t *testing.T) (*handlers.DependantHandler, *service.DependencyService, *service.EvidenceTokenService) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	dependencySvc := testutil.NewTestDependencyService(t, db)
	tokenSvc := testutil.NewTestEvidenceTokenService(t)
	return handlers.NewDependantHandler(dependencySvc, tokenSvc), dependencySvc, tokenSvc
}

// TestDependantHandler_Declare tests POST /api/dependants.
//
// WHY: Declaration is the entry point of the dependant lifecycle; the
// endpoint must create the record, echo it back with 201, and map
// validation and business failures to the right status codes.
func TestDependantHandler_Declare(t *testing.T) {
	t.Run("POST /api/dependants returns 201 with the new record", func(t *testing.T) {
		// Setup
		handler, _, _ := newDependantHandler(t)
		body := request.DeclareDependantRequest{
			DeceasedID:  testutil.MakeID(),
			DependantID: testutil.MakeID(),
			Basis:       model.BasisChild,
			IsMinor:     true,
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants", body, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Declare(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.LegalDependant
		testutil.DecodeJSONResponse(t, w, &response)
		if response.DependencyBasis != model.BasisChild {
			t.Errorf("Expected basis CHILD, got %s", response.DependencyBasis)
		}
		if !response.IsMinor {
			t.Error("Expected minor flag in the response")
		}
		if response.ID == "" {
			t.Error("Expected a generated record ID")
		}
	})

	t.Run("invalid basis returns 400 with field details", func(t *testing.T) {
		// Setup
		handler, _, _ := newDependantHandler(t)
		body := request.DeclareDependantRequest{
			DeceasedID:  testutil.MakeID(),
			DependantID: testutil.MakeID(),
			Basis:       "NEIGHBOUR",
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants", body, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Declare(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("duplicate declaration returns 409", func(t *testing.T) {
		// Setup
		handler, _, _ := newDependantHandler(t)
		body := request.DeclareDependantRequest{
			DeceasedID:  testutil.MakeID(),
			DependantID: testutil.MakeID(),
			Basis:       model.BasisSpouse,
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants", body, nil)
		handler.Declare(httptest.NewRecorder(), req)

		req = testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants", body, nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Declare(w, req)

		// Assert
		if w.Code != http.StatusConflict {
			t.Errorf("Expected status 409 on duplicate declaration, got %d", w.Code)
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		// Setup
		handler, _, _ := newDependantHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/api/dependants", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Declare(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for an empty body, got %d", w.Code)
		}
	})
}

// TestDependantHandler_Get tests GET /api/dependants/{uuid}.
func TestDependantHandler_Get(t *testing.T) {
	t.Run("unknown dependant returns 404", func(t *testing.T) {
		// Setup
		handler, _, _ := newDependantHandler(t)
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/dependants/"+testutil.MakeID(),
			map[string]string{"uuid": testutil.MakeID()})
		w := httptest.NewRecorder()

		// Execute
		handler.Get(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("existing dependant returns 200", func(t *testing.T) {
		// Setup
		handler, dependencySvc, _ := newDependantHandler(t)
		created, err := dependencySvc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisParent, service.DependantFlags{})
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/dependants/"+created.ID,
			map[string]string{"uuid": created.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.Get(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var response model.LegalDependant
		testutil.DecodeJSONResponse(t, w, &response)
		if response.ID != created.ID {
			t.Errorf("Expected dependant %s, got %s", created.ID, response.ID)
		}
	})
}

// TestDependantHandler_AddEvidence tests POST /api/dependants/{uuid}/evidence.
//
// WHY: The endpoint accepts either a raw document ID or a sealed token
// and always answers with a fresh sealed token; both submission paths
// must land on the same stored reference.
func TestDependantHandler_AddEvidence(t *testing.T) {
	t.Run("raw document ID attaches and returns a sealed token", func(t *testing.T) {
		// Setup
		handler, dependencySvc, tokenSvc := newDependantHandler(t)
		created, err := dependencySvc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisSibling, service.DependantFlags{})
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}
		docID := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants/"+created.ID+"/evidence",
			request.AddEvidenceRequest{DocumentID: docID},
			map[string]string{"uuid": created.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.AddEvidence(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var response handlers.EvidenceResponse
		testutil.DecodeJSONResponse(t, w, &response)
		if !response.Added {
			t.Error("Expected the document to be added")
		}
		unsealed, err := tokenSvc.Unseal(response.Token)
		if err != nil {
			t.Fatalf("Unseal() returned unexpected error: %v", err)
		}
		if unsealed != docID {
			t.Errorf("Expected the returned token to seal %s, got %s", docID, unsealed)
		}
	})

	t.Run("sealed token resolves to its document ID", func(t *testing.T) {
		// Setup
		handler, dependencySvc, tokenSvc := newDependantHandler(t)
		created, err := dependencySvc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisSibling, service.DependantFlags{})
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}
		docID := testutil.MakeID()
		token, err := tokenSvc.Seal(docID)
		if err != nil {
			t.Fatalf("Seal() returned unexpected error: %v", err)
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants/"+created.ID+"/evidence",
			request.AddEvidenceRequest{EvidenceToken: token},
			map[string]string{"uuid": created.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.AddEvidence(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var response handlers.EvidenceResponse
		testutil.DecodeJSONResponse(t, w, &response)
		if !response.Added {
			t.Error("Expected the document to be added")
		}
		if len(response.Dependant.EvidenceDocuments) != 1 || response.Dependant.EvidenceDocuments[0] != docID {
			t.Errorf("Expected evidence %s on the record, got %v", docID, response.Dependant.EvidenceDocuments)
		}
	})

	t.Run("tampered token returns 400", func(t *testing.T) {
		// Setup
		handler, dependencySvc, _ := newDependantHandler(t)
		created, err := dependencySvc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisSibling, service.DependantFlags{})
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants/"+created.ID+"/evidence",
			request.AddEvidenceRequest{EvidenceToken: "forged-token"},
			map[string]string{"uuid": created.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.AddEvidence(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for a forged token, got %d", w.Code)
		}
	})

	t.Run("both documentId and token returns 400", func(t *testing.T) {
		// Setup
		handler, _, tokenSvc := newDependantHandler(t)
		token, err := tokenSvc.Seal(testutil.MakeID())
		if err != nil {
			t.Fatalf("Seal() returned unexpected error: %v", err)
		}
		id := testutil.MakeID()

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants/"+id+"/evidence",
			request.AddEvidenceRequest{DocumentID: testutil.MakeID(), EvidenceToken: token},
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		// Execute
		handler.AddEvidence(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 when both references are supplied, got %d", w.Code)
		}
	})
}

// TestDependantHandler_Assess tests POST /api/dependants/{uuid}/assessment.
func TestDependantHandler_Assess(t *testing.T) {
	t.Run("valid assessment returns 200 with the updated record", func(t *testing.T) {
		// Setup
		handler, dependencySvc, _ := newDependantHandler(t)
		created, err := dependencySvc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisSibling, service.DependantFlags{})
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}

		body := request.AssessDependencyRequest{
			DeceasedMonthlyIncome: 5000,
			DependantMonthlyNeeds: 2000,
			SupportAmount:         1000,
			SupportFrequency:      model.FrequencyMonthly,
			SupportStartDate:      "2020-01-15",
			DependencyPercentage:  50,
			Level:                 model.DependencyPartial,
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants/"+created.ID+"/assessment",
			body, map[string]string{"uuid": created.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.Assess(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var response model.LegalDependant
		testutil.DecodeJSONResponse(t, w, &response)
		if response.DependencyLevel != model.DependencyPartial {
			t.Errorf("Expected level PARTIAL, got %s", response.DependencyLevel)
		}
		if response.DependencyPercentage != 50 {
			t.Errorf("Expected 50%%, got %.2f", response.DependencyPercentage)
		}
	})

	t.Run("future support start date returns 400", func(t *testing.T) {
		// Setup
		handler, dependencySvc, _ := newDependantHandler(t)
		created, err := dependencySvc.DeclareDependant(testutil.MakeID(), testutil.MakeID(), model.BasisSibling, service.DependantFlags{})
		if err != nil {
			t.Fatalf("DeclareDependant() returned unexpected error: %v", err)
		}

		body := request.AssessDependencyRequest{
			DeceasedMonthlyIncome: 5000,
			DependantMonthlyNeeds: 2000,
			SupportAmount:         1000,
			SupportFrequency:      model.FrequencyMonthly,
			SupportStartDate:      "2099-01-15",
			DependencyPercentage:  50,
			Level:                 model.DependencyPartial,
		}

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/dependants/"+created.ID+"/assessment",
			body, map[string]string{"uuid": created.ID})
		w := httptest.NewRecorder()

		// Execute
		handler.Assess(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for a future start date, got %d", w.Code)
		}
	})
}
