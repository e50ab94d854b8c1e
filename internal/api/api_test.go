package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/milasset/internal/db"
	"github.com/erazemk/milasset/internal/model"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewSeededTestDB(t)
	server := httptest.NewServer(NewRouter(database, testJWTSecret))
	t.Cleanup(server.Close)
	return server
}

func login(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&loginResp)
	if loginResp.Token == "" {
		t.Fatal("empty token from login")
	}
	if loginResp.User == nil || loginResp.User.Email != email {
		t.Fatalf("expected user %s in login response", email)
	}
	return loginResp.Token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	req, err := authRequest(method, url, token, body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	server := setupTestServer(t)

	for _, creds := range []map[string]string{
		{"email": "general.smith@military.gov", "password": ""},
		{"email": "nobody@military.gov", "password": "x"},
	} {
		body, _ := json.Marshal(creds)
		resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401 for %v, got %d", creds, resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader([]byte("{")))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminCanOpenExpenditures(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "general.smith@military.gov")

	resp := do(t, "GET", server.URL+"/api/expenditures", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var expenditures []model.Expenditure
	json.NewDecoder(resp.Body).Decode(&expenditures)
	if len(expenditures) != 2 {
		t.Errorf("expected 2 expenditures, got %d", len(expenditures))
	}
}

func TestLogisticsOfficerDeniedExpenditures(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "captain.wilson@military.gov")

	resp := do(t, "GET", server.URL+"/api/expenditures", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}

	resp = do(t, "POST", server.URL+"/api/expenditures", token, map[string]any{
		"equipmentType": "ammunition", "quantity": 10, "baseId": "base1",
		"date": "2023-11-01", "purpose": "x",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for create, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", server.URL+"/api/users", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for users, got %d", resp.StatusCode)
	}
}

func TestUnauthenticatedAccess(t *testing.T) {
	server := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/purchases")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for unauthenticated request, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = do(t, "GET", server.URL+"/api/purchases", "garbage", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", resp.StatusCode)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "major.davis@military.gov")

	if resp := do(t, "GET", server.URL+"/api/auth/me", token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 before logout, got %d", resp.StatusCode)
	}
	if resp := do(t, "POST", server.URL+"/api/auth/logout", token, nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", resp.StatusCode)
	}
	if resp := do(t, "GET", server.URL+"/api/auth/me", token, nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestNavByRole(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		email string
		want  int
	}{
		{"general.smith@military.gov", 8},
		{"colonel.johnson@military.gov", 7},
		{"captain.wilson@military.gov", 6},
	}
	for _, tt := range tests {
		token := login(t, server, tt.email)
		resp := do(t, "GET", server.URL+"/api/nav", token, nil)
		var views []model.View
		json.NewDecoder(resp.Body).Decode(&views)
		if len(views) != tt.want {
			t.Errorf("%s: expected %d views, got %d", tt.email, tt.want, len(views))
		}
	}
}

func TestFilterPurchasesByType(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "lt.martinez@military.gov")

	resp := do(t, "GET", server.URL+"/api/purchases?equipmentType=vehicle", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var purchases []model.Purchase
	json.NewDecoder(resp.Body).Decode(&purchases)
	if len(purchases) != 1 || purchases[0].Quantity != 5 || purchases[0].Cost.IntPart() != 350000 {
		t.Errorf("expected the single vehicle purchase, got %+v", purchases)
	}

	resp = do(t, "GET", server.URL+"/api/purchases?startDate=yesterday", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad date, got %d", resp.StatusCode)
	}
}

func TestCreateTransferFlow(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "colonel.johnson@military.gov")

	resp := do(t, "POST", server.URL+"/api/transfers", token, map[string]any{
		"equipmentType": "weapon", "quantity": 5, "fromBaseId": "base1", "toBaseId": "base1", "date": "2023-11-01",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	var verr struct {
		Fields map[string]string `json:"fields"`
	}
	json.NewDecoder(resp.Body).Decode(&verr)
	if verr.Fields["toBaseId"] == "" {
		t.Errorf("expected toBaseId field error, got %v", verr.Fields)
	}

	resp = do(t, "POST", server.URL+"/api/transfers", token, map[string]any{
		"equipmentType": "weapon", "quantity": 5, "fromBaseId": "base1", "toBaseId": "base2", "date": "2023-11-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created model.Transfer
	json.NewDecoder(resp.Body).Decode(&created)
	if created.ID != "trans4" || created.Status != model.TransferStatusPending || created.AuthorizedBy != "2" {
		t.Errorf("unexpected transfer: %+v", created)
	}

	resp = do(t, "GET", server.URL+"/api/transfers", token, nil)
	var transfers []model.Transfer
	json.NewDecoder(resp.Body).Decode(&transfers)
	if len(transfers) != 4 || transfers[0].ID != "trans4" {
		t.Errorf("expected trans4 first of 4, got %d", len(transfers))
	}
}

func TestAssignmentSubViews(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "captain.wilson@military.gov")

	for sub, want := range map[string]string{"active": "asn1", "history": "asn2"} {
		resp := do(t, "GET", server.URL+"/api/assignments?view="+sub, token, nil)
		var assignments []model.Assignment
		json.NewDecoder(resp.Body).Decode(&assignments)
		if len(assignments) != 1 || assignments[0].ID != want {
			t.Errorf("view=%s: expected only %s, got %+v", sub, want, assignments)
		}
	}
}

func TestDashboardEndpoint(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "general.smith@military.gov")

	resp := do(t, "GET", server.URL+"/api/dashboard?equipmentType=ammunition", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var d struct {
		Summaries []model.EquipmentSummary `json:"summaries"`
		Totals    model.Totals             `json:"totals"`
	}
	json.NewDecoder(resp.Body).Decode(&d)
	if len(d.Summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(d.Summaries))
	}
	if d.Totals.ClosingBalance != d.Summaries[0].ClosingBalance {
		t.Errorf("totals %d do not match summary %d", d.Totals.ClosingBalance, d.Summaries[0].ClosingBalance)
	}
}

func TestExportPurchases(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "general.smith@military.gov")

	resp := do(t, "GET", server.URL+"/api/purchases/export?baseId=base1", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()
	rows, _ := f.GetRows("Purchases")
	if len(rows) != 3 {
		t.Errorf("expected header and 2 rows, got %d", len(rows))
	}
}

func TestResetPasswordAndLogin(t *testing.T) {
	server := setupTestServer(t)
	admin := login(t, server, "general.smith@military.gov")

	resp := do(t, "PUT", server.URL+"/api/users/4/password", admin, map[string]string{"password": "short"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for short password, got %d", resp.StatusCode)
	}

	resp = do(t, "PUT", server.URL+"/api/users/4/password", admin, map[string]string{"password": "long enough"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := json.Marshal(map[string]string{"email": "captain.wilson@military.gov", "password": "password"})
	resp2, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp2.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with old password, got %d", resp2.StatusCode)
	}
	resp2.Body.Close()

	resp = do(t, "PUT", server.URL+"/api/users/99/password", admin, map[string]string{"password": "long enough"})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", resp.StatusCode)
	}
}

func TestAvatarUpload(t *testing.T) {
	server := setupTestServer(t)
	token := login(t, server, "captain.wilson@military.gov")

	var img bytes.Buffer
	png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 64, 48)))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("avatar", "me.png")
	part.Write(img.Bytes())
	mw.Close()

	upload := func(id string) int {
		req, _ := http.NewRequest("PUT", server.URL+"/api/users/"+id+"/avatar", bytes.NewReader(body.Bytes()))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if code := upload("2"); code != http.StatusForbidden {
		t.Errorf("expected 403 for someone else's avatar, got %d", code)
	}
	if code := upload("4"); code != http.StatusOK {
		t.Fatalf("expected 200 for own avatar, got %d", code)
	}

	resp := do(t, "GET", server.URL+"/api/users/4/avatar", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", ct)
	}
}

func TestSettingsEndpoint(t *testing.T) {
	server := setupTestServer(t)
	admin := login(t, server, "general.smith@military.gov")

	resp := do(t, "PUT", server.URL+"/api/settings", admin, map[string]int{"sessionTtlHours": 12})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp = do(t, "GET", server.URL+"/api/settings", admin, nil)
	var s map[string]int
	json.NewDecoder(resp.Body).Decode(&s)
	if s["sessionTtlHours"] != 12 {
		t.Errorf("expected 12, got %v", s)
	}

	for _, hours := range []int{0, 24*365 + 1, 3_000_000} {
		resp := do(t, "PUT", server.URL+"/api/settings", admin, map[string]int{"sessionTtlHours": hours})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("sessionTtlHours %d: expected 400, got %d", hours, resp.StatusCode)
		}
	}

	// The rejected values left the 12 hour setting in place, so fresh
	// tokens still validate.
	fresh := login(t, server, "general.smith@military.gov")
	if resp := do(t, "GET", server.URL+"/api/auth/me", fresh, nil); resp.StatusCode != http.StatusOK {
		t.Errorf("expected fresh token to be accepted, got %d", resp.StatusCode)
	}

	commander := login(t, server, "colonel.johnson@military.gov")
	if resp := do(t, "GET", server.URL+"/api/settings", commander, nil); resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for commander, got %d", resp.StatusCode)
	}
}
