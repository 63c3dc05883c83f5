// ABOUTME: Tests for the resource facades: paths, verbs, and wire keys
// ABOUTME: Ends with a sign-in-then-browse flow against one fake gateway

package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sagmcom/eamctl/internal/session"
)

// decodeJSONBody fails the test if the request body is not valid JSON for v.
func decodeJSONBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Fatalf("decoding request body: %v", err)
	}
}

// recordingServer replies 200 with an empty body to everything and records
// the last request. An empty body satisfies both object and list decoders,
// so one fake serves every facade.
func recordingServer(t *testing.T) (*httptest.Server, *http.Request) {
	t.Helper()
	last := &http.Request{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*last = *r
		w.Header().Set("Content-Type", "application/json")
	}))
	t.Cleanup(server.Close)
	return server, last
}

func TestFacadePaths(t *testing.T) {
	server, last := recordingServer(t)
	c := newTestClient(server.URL, &memStore{})
	ctx := context.Background()

	cases := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
	}{
		{"assets get", func() error { _, err := c.Assets.Get(ctx, 7); return err },
			http.MethodGet, "/api/machine/retrieve-machine/7"},
		{"assets update", func() error { _, err := c.Assets.Update(ctx, Machine{ID: 7}); return err },
			http.MethodPut, "/api/machine/update-machine"},
		{"users list", func() error { _, err := c.Users.List(ctx); return err },
			http.MethodGet, "/api/user/retrieve-all-users"},
		{"users delete", func() error { return c.Users.Delete(ctx, 3) },
			http.MethodDelete, "/api/user/delete-user/3"},
		{"work orders assign", func() error { _, err := c.WorkOrders.Assign(ctx, 5, 12); return err },
			http.MethodPut, "/api/ordreTravail/assign-ordreTravail/5"},
		{"work orders status", func() error { _, err := c.WorkOrders.UpdateStatus(ctx, 5, "EN_COURS"); return err },
			http.MethodPut, "/api/ordreTravail/update-status-ordreTravail/5"},
		{"interventions create", func() error { _, err := c.Interventions.Create(ctx, Intervention{}); return err },
			http.MethodPost, "/api/ordreIntervention/add-ordreIntervention"},
		{"plannings list", func() error { _, err := c.Plannings.List(ctx); return err },
			http.MethodGet, "/api/planning/retrieve-all-plannings"},
		{"rapports for intervention", func() error { _, err := c.Rapports.ForIntervention(ctx, 9); return err },
			http.MethodGet, "/api/rapports/intervention/9"},
		{"archives statistics", func() error { _, err := c.Archives.Statistics(ctx); return err },
			http.MethodGet, "/api/archives/statistics"},
		{"notifications mark read", func() error { return c.Notifications.MarkRead(ctx, 4) },
			http.MethodPut, "/api/notifications/4/read"},
		{"activity list", func() error { _, err := c.Activity.List(ctx); return err },
			http.MethodGet, "/api/activities"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if last.Method != tc.wantMethod || last.URL.Path != tc.wantPath {
				t.Errorf("got %s %s, want %s %s", last.Method, last.URL.Path, tc.wantMethod, tc.wantPath)
			}
		})
	}
}

// TestWorkOrdersAssign_TechnicianQueryParameter pins the Spring contract:
// the technician id travels as a query parameter, never a body. The gateway
// rejects the request with a 400 when the parameter is missing.
func TestWorkOrdersAssign_TechnicianQueryParameter(t *testing.T) {
	var gotQuery, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		if r.URL.Query().Get("technicienId") == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Required request parameter 'technicienId' is not present"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":5,"titre":"t","description":"d","assignedTo":12}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	order, err := c.WorkOrders.Assign(context.Background(), 5, 12)
	if err != nil {
		t.Fatalf("assign: %v (query %q, body %q)", err, gotQuery, gotBody)
	}
	if gotQuery != "technicienId=12" {
		t.Errorf("query = %q, want technicienId=12", gotQuery)
	}
	if gotBody != "" {
		t.Errorf("expected no request body, got %q", gotBody)
	}
	if order.AssignedTo != 12 {
		t.Errorf("AssignedTo = %d, want 12", order.AssignedTo)
	}
}

// TestWorkOrdersUpdateStatus_StatutQueryParameter pins the same contract for
// status transitions.
func TestWorkOrdersUpdateStatus_StatutQueryParameter(t *testing.T) {
	var gotQuery, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		if r.URL.Query().Get("statut") == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Required request parameter 'statut' is not present"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":5,"titre":"t","description":"d","statut":"EN_COURS"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	order, err := c.WorkOrders.UpdateStatus(context.Background(), 5, "EN_COURS")
	if err != nil {
		t.Fatalf("update status: %v (query %q, body %q)", err, gotQuery, gotBody)
	}
	if gotQuery != "statut=EN_COURS" {
		t.Errorf("query = %q, want statut=EN_COURS", gotQuery)
	}
	if gotBody != "" {
		t.Errorf("expected no request body, got %q", gotBody)
	}
	if order.Statut != "EN_COURS" {
		t.Errorf("Statut = %q, want EN_COURS", order.Statut)
	}
}

// TestRapportsGenerate_MultipartUpload pins the document service contract:
// interventionId, titre, and description as form fields plus a "file" part.
func TestRapportsGenerate_MultipartUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"expected multipart/form-data"}`))
			return
		}
		if r.FormValue("interventionId") != "9" || r.FormValue("titre") != "Inspection Q3" ||
			r.FormValue("description") != "routine" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"missing form fields"}`))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"Required request part 'file' is not present"}`))
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		if header.Filename != "inspection.pdf" || string(content) != "%PDF-stub" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"unexpected file part"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":31,"interventionId":9,"titre":"Inspection Q3"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	rapport, err := c.Rapports.Generate(context.Background(), 9, "Inspection Q3", "routine",
		"/tmp/reports/inspection.pdf", strings.NewReader("%PDF-stub"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if rapport.ID != 31 || rapport.InterventionID != 9 {
		t.Errorf("unexpected rapport %+v", rapport)
	}
}

// TestWorkOrder_AssignedToWireKey pins the assignment key the gateway
// serializes; the original console reads w.assignedTo.
func TestWorkOrder_AssignedToWireKey(t *testing.T) {
	var order WorkOrder
	if err := json.Unmarshal([]byte(`{"id":5,"titre":"t","description":"d","assignedTo":12}`), &order); err != nil {
		t.Fatal(err)
	}
	if order.AssignedTo != 12 {
		t.Errorf("AssignedTo = %d, want 12", order.AssignedTo)
	}
	raw, err := json.Marshal(WorkOrder{Titre: "t", Description: "d", AssignedTo: 12})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"assignedTo":12`) {
		t.Errorf("expected assignedTo wire key, got %s", raw)
	}
}

func TestArchivesLinked_QueryParameters(t *testing.T) {
	server, last := recordingServer(t)
	c := newTestClient(server.URL, &memStore{})
	if _, err := c.Archives.Linked(context.Background(), "MACHINE", 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := last.URL.Query()
	if q.Get("entityType") != "MACHINE" || q.Get("entityId") != "11" {
		t.Errorf("unexpected query %q", last.URL.RawQuery)
	}
}

// TestMachine_WireKeys pins the gateway's accented and misspelled JSON keys.
// The gateway serializes them exactly like this; a tag rename here would
// silently drop the maintenance dates.
func TestMachine_WireKeys(t *testing.T) {
	raw, err := json.Marshal(Machine{Nom: "Presse A", Type: "PRESSE", Emplacement: "Atelier 2"})
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]any
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"nom", "type", "emplacement"} {
		if _, ok := keys[want]; !ok {
			t.Errorf("expected wire key %q, got %s", want, raw)
		}
	}

	payload := `{"id":1,"nom":"Presse A","type":"PRESSE","emplacement":"Atelier 2",` +
		`"dateDernièreMaintenance":"2026-01-15T00:00:00Z","dateProchaineMainenance":"2026-07-15T00:00:00Z"}`
	var m Machine
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		t.Fatal(err)
	}
	if m.DateDerniereMaintenance == nil || m.DateProchaineMaintenance == nil {
		t.Error("maintenance dates must round-trip through the accented keys")
	}
}

func TestWorkOrder_PriorityWireKey(t *testing.T) {
	raw, err := json.Marshal(WorkOrder{Titre: "Vibration check", Description: "d", Priorite: "HAUTE"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"priorité":"HAUTE"`) {
		t.Errorf("expected accented priority key, got %s", raw)
	}
}

// TestSignInThenBrowse walks the full flow: login, persist the credential,
// then list assets through the same client and see the bearer header arrive.
func TestSignInThenBrowse(t *testing.T) {
	var listAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"jwt-flow","message":"Login successful"}`))
	})
	mux.HandleFunc("GET /api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"email":"admin@sagmcom.io","role":"ADMIN"}`))
	})
	mux.HandleFunc("GET /api/machine/retrieve-all-machines", func(w http.ResponseWriter, r *http.Request) {
		listAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"nom":"Presse A","type":"PRESSE","emplacement":"Atelier 2","statut":"EN_MARCHE"}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := &memStore{}
	c := newTestClient(server.URL, store)
	ctx := context.Background()

	token, err := c.Auth.Login(ctx, "admin@sagmcom.io", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	profile, err := c.Auth.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if err := c.Auth.SaveSession(session.Credential{Token: token, Role: profile.Role}); err != nil {
		t.Fatalf("saving session: %v", err)
	}
	if store.cred.Token != "jwt-flow" || store.cred.Role != "ADMIN" {
		t.Fatalf("unexpected stored credential %+v", store.cred)
	}

	machines, err := c.Assets.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listAuth != "Bearer jwt-flow" {
		t.Errorf("expected bearer header on list, got %q", listAuth)
	}
	if len(machines) != 1 || machines[0].Nom != "Presse A" || machines[0].Statut != "EN_MARCHE" {
		t.Errorf("unexpected machines %+v", machines)
	}
}
