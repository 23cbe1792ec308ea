package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shashankyadav00/milk-attendance-system/internal/session"
	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

func modelEntry(customer, shift, date string, litres, rate float64) models.Entry {
	return models.Entry{CustomerName: customer, Shift: shift, Date: date, Litres: litres, Rate: rate}
}

func customerFixture(id int64, name string, price *float64) *models.Customer {
	return &models.Customer{ID: id, FullName: name, PricePerLitre: price, Shift: "Morning"}
}

func overviewFixture(year, month, days, day int, customerID int64, litres float64) *models.Overview {
	ov := &models.Overview{Year: year, Month: month, DaysInMonth: days, Matrix: map[int]map[int64]models.Cell{}}
	if day > 0 {
		ov.Matrix[day] = map[int64]models.Cell{customerID: {Litres: litres}}
	}
	return ov
}

func reminderFixture(enabled bool, at string, repeatDays int) models.Reminder {
	return models.Reminder{Enabled: enabled, Time: at, RepeatDays: repeatDays}
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()

	store, err := session.Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(server.URL, 5*time.Second, store), store
}

func TestUserIDInjection(t *testing.T) {
	var gotUserID string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.URL.Query().Get("userId")
		w.Write([]byte(`[]`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	if _, err := client.ListCustomers(context.Background(), "Morning"); err != nil {
		t.Fatalf("ListCustomers: %v", err)
	}
	if gotUserID != "7" {
		t.Errorf("userId param = %q, want 7", gotUserID)
	}
}

func TestNoUserIDOnAuthCalls(t *testing.T) {
	var gotUserID string
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = r.URL.Query().Get("userId")
		w.Write([]byte(`{"success":true,"userId":7}`))
	}))

	if err := store.SetUserID("3"); err != nil {
		t.Fatal(err)
	}

	if _, err := client.Login(context.Background(), "a@b.com", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotUserID != "" {
		t.Errorf("auth call carried userId=%q, want none", gotUserID)
	}
}

func TestLoginReplacesSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"userId":7}`))
	}))

	// Stale state from a previous user
	if err := store.Set(session.KeyUserID, "3"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(session.KeySelectedShift, "Night"); err != nil {
		t.Fatal(err)
	}

	userID, err := client.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if userID != "7" {
		t.Errorf("userID = %q, want 7", userID)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != session.KeyUserID {
		t.Errorf("keys after login = %v, want only userId", keys)
	}

	stored, err := store.UserID()
	if err != nil {
		t.Fatal(err)
	}
	if stored != "7" {
		t.Errorf("stored userId = %q, want 7", stored)
	}
}

func TestLoginFailureKeepsSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))

	if err := store.SetUserID("3"); err != nil {
		t.Fatal(err)
	}

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("want error on success:false")
	}
	if err.Error() != "Invalid credentials" {
		t.Errorf("error = %q, want the server message verbatim", err)
	}

	stored, err := store.UserID()
	if err != nil {
		t.Fatal(err)
	}
	if stored != "3" {
		t.Errorf("failed login must not touch the session, userId = %q", stored)
	}
}

func TestCreateCustomerBlankNameMakesNoCall(t *testing.T) {
	calls := 0
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	_, err := client.CreateCustomer(context.Background(), CustomerParams{
		FullName: "   ",
		Shift:    "Morning",
	})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err = %v, want ErrNameRequired", err)
	}
	if calls != 0 {
		t.Errorf("blank name reached the network, %d call(s)", calls)
	}
}

func TestCreateCustomerNormalization(t *testing.T) {
	var body map[string]any
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"id":1,"fullName":"Ravi","shift":"Morning","pricePerLitre":50}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	created, err := client.CreateCustomer(context.Background(), CustomerParams{
		FullName:      "  Ravi  ",
		Nickname:      "   ",
		PricePerLitre: "50",
		Shift:         "Morning",
	})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	if body["fullName"] != "Ravi" {
		t.Errorf("fullName = %v, want trimmed Ravi", body["fullName"])
	}
	if body["nickname"] != nil {
		t.Errorf("blank nickname = %v, want null", body["nickname"])
	}
	if price, ok := body["pricePerLitre"].(float64); !ok || price != 50 {
		t.Errorf("pricePerLitre = %v (%T), want the number 50", body["pricePerLitre"], body["pricePerLitre"])
	}

	// Round trip comes back as a number, not a string
	if created.PricePerLitre == nil || *created.PricePerLitre != 50 {
		t.Errorf("created price = %v, want 50", created.PricePerLitre)
	}
}

func TestCreateEntryComputesAmount(t *testing.T) {
	var body map[string]any
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"id":1}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	_, err := client.CreateEntry(context.Background(), modelEntry("Ravi", "Morning", "2025-06-01", 2, 50))
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	if amount, _ := body["amount"].(float64); amount != 100 {
		t.Errorf("amount = %v, want 100 (litres*rate at submit time)", body["amount"])
	}
	if userID, _ := body["userId"].(float64); userID != 7 {
		t.Errorf("userId in body = %v, want 7", body["userId"])
	}
}

func TestCreateEntryPresenceValidation(t *testing.T) {
	calls := 0
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name         string
		customer     string
		litres, rate float64
	}{
		{"no customer", "", 2, 50},
		{"no litres", "Ravi", 0, 50},
		{"no rate", "Ravi", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateEntry(context.Background(),
				modelEntry(tt.customer, "Morning", "2025-06-01", tt.litres, tt.rate))
			if !errors.Is(err, ErrEntryIncomplete) {
				t.Errorf("err = %v, want ErrEntryIncomplete", err)
			}
		})
	}

	if calls != 0 {
		t.Errorf("incomplete entries reached the network, %d call(s)", calls)
	}
}

func TestAuthErrorOnForbidden(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	_, err := client.ListCustomers(context.Background(), "Morning")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("err = %v, want *AuthError", err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", authErr.StatusCode)
	}
}

func TestServerMessageSurfacedVerbatim(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"No unpaid customers for this shift"}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	err := client.SendUnpaidEmail(context.Background(), "Morning")
	if err == nil || err.Error() != "No unpaid customers for this shift" {
		t.Errorf("err = %v, want the server message verbatim", err)
	}
}

func TestGetOverviewEmptyMonth(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("shift") != "Morning" || q.Get("month") != "6" || q.Get("year") != "2025" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{"year":2025,"month":6,"daysInMonth":30,"customers":[],` +
			`"matrix":{},"totalLitresPerCustomer":{},"totalAmountPerCustomer":{},` +
			`"totalPerDay":{},"grandTotalAmount":0,"paymentsToday":{}}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	ov, err := client.GetOverview(context.Background(), "Morning", 6, 2025)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}

	// 30 day columns regardless of customer count
	if ov.DaysInMonth != 30 {
		t.Errorf("daysInMonth = %d, want 30", ov.DaysInMonth)
	}
	if len(ov.Customers) != 0 {
		t.Errorf("customers = %d, want none", len(ov.Customers))
	}
}

func TestGetOverviewDecodesMatrix(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"year":2025,"month":6,"daysInMonth":30,` +
			`"customers":[{"id":7,"fullName":"Ravi","shift":"Morning","pricePerLitre":50,"nickname":null}],` +
			`"matrix":{"3":{"7":{"litres":1.5}}},` +
			`"totalLitresPerCustomer":{"7":1.5},"totalAmountPerCustomer":{"7":75},` +
			`"totalPerDay":{"3":1.5},"grandTotalAmount":75,` +
			`"paymentsToday":{"ravi":true}}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	ov, err := client.GetOverview(context.Background(), "Morning", 6, 2025)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}

	if got := ov.Litres(3, 7); got != 1.5 {
		t.Errorf("matrix[3][7] = %v, want 1.5", got)
	}
	if !ov.PaidToday("Ravi ") {
		t.Error("paymentsToday must match trimmed, case-insensitive names")
	}
	if ov.TotalAmountPerCustomer[7] != 75 {
		t.Errorf("totalAmount[7] = %v, want 75", ov.TotalAmountPerCustomer[7])
	}
}

func TestQuickAddEntry(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/milk", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"id":9}`))
	})
	client, store := newTestClient(t, mux)

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	price := 50.0
	customer := customerFixture(7, "Ravi", &price)
	ov := overviewFixture(2025, 6, 30, 3, 7, 1.5)

	litres, err := client.QuickAddEntry(context.Background(), ov, customer, "Morning", 3, 0.5)
	if err != nil {
		t.Fatalf("QuickAddEntry: %v", err)
	}

	// baseline 1.5 + step 0.5
	if litres != 2 {
		t.Errorf("litres = %v, want 2", litres)
	}
	if body["date"] != "2025-06-03" {
		t.Errorf("date = %v, want the clicked day 2025-06-03", body["date"])
	}
	if amount, _ := body["amount"].(float64); amount != 100 {
		t.Errorf("amount = %v, want 100", body["amount"])
	}
	if rate, _ := body["rate"].(float64); rate != 50 {
		t.Errorf("rate = %v, want the configured price 50", body["rate"])
	}
}

func TestQuickAddReset(t *testing.T) {
	var body map[string]any
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"id":9}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	price := 50.0
	customer := customerFixture(7, "Ravi", &price)
	ov := overviewFixture(2025, 6, 30, 3, 7, 1.5)

	litres, err := client.QuickAddEntry(context.Background(), ov, customer, "Morning", 3, 0)
	if err != nil {
		t.Fatalf("QuickAddEntry: %v", err)
	}

	// Reset ignores the baseline entirely
	if litres != 0 {
		t.Errorf("litres after reset = %v, want exactly 0", litres)
	}
	if got, _ := body["litres"].(float64); got != 0 {
		t.Errorf("submitted litres = %v, want 0", body["litres"])
	}
}

func TestQuickAddRejectsDayOutsideMonth(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the network")
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	customer := customerFixture(7, "Ravi", nil)
	ov := overviewFixture(2025, 6, 30, 0, 0, 0)

	if _, err := client.QuickAddEntry(context.Background(), ov, customer, "Morning", 31, 0.5); err == nil {
		t.Error("want error for day 31 of a 30-day month")
	}
}

func TestSetPaidBody(t *testing.T) {
	var body map[string]any
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"success":true}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	if err := client.SetPaid(context.Background(), "Ravi", "Morning", true); err != nil {
		t.Fatalf("SetPaid: %v", err)
	}

	if body["customerName"] != "Ravi" || body["shift"] != "Morning" {
		t.Errorf("body = %v", body)
	}
	if paid, _ := body["paid"].(bool); !paid {
		t.Errorf("paid = %v, want true", body["paid"])
	}
}

func TestTogglePaidThenReload(t *testing.T) {
	paid := map[string]bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/payments", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CustomerName string `json:"customerName"`
			Paid         bool   `json:"paid"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		paid[body.CustomerName] = body.Paid
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /api/payments/{shift}", func(w http.ResponseWriter, r *http.Request) {
		resp := struct {
			Success  bool             `json:"success"`
			Payments []models.Payment `json:"payments"`
		}{Success: true}
		for name, p := range paid {
			resp.Payments = append(resp.Payments, models.Payment{CustomerName: name, Shift: "Morning", Paid: p})
		}
		json.NewEncoder(w).Encode(resp)
	})
	client, store := newTestClient(t, mux)

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	if err := client.SetPaid(context.Background(), "Ravi", "Morning", true); err != nil {
		t.Fatalf("SetPaid: %v", err)
	}

	// The fresh fetch, not the local flip, is the source of truth
	payments, err := client.ListPayments(context.Background(), "Morning")
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(payments) != 1 || !payments[0].Paid {
		t.Errorf("payments after toggle = %+v, want Ravi paid", payments)
	}
}

func TestFindCustomer(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"fullName":"Ravi Kumar","nickname":"Ravi","shift":"Morning"},` +
			`{"id":2,"fullName":"Suresh","nickname":null,"shift":"Morning"}]`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ref    string
		wantID int64
	}{
		{"2", 2},
		{"ravi kumar", 1},
		{" RAVI ", 1}, // nickname, trimmed and case-insensitive
		{"Suresh", 2},
	}
	for _, tt := range tests {
		c, err := client.FindCustomer(context.Background(), "Morning", tt.ref)
		if err != nil {
			t.Errorf("FindCustomer(%q): %v", tt.ref, err)
			continue
		}
		if c.ID != tt.wantID {
			t.Errorf("FindCustomer(%q) = id %d, want %d", tt.ref, c.ID, tt.wantID)
		}
	}

	if _, err := client.FindCustomer(context.Background(), "Morning", "nobody"); err == nil {
		t.Error("want error for unknown customer")
	}
}

func TestSaveReminderThenListNotifications(t *testing.T) {
	var reminderBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/payments/save-reminder", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&reminderBody); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"subject":"Unpaid reminder","dateSent":"2025-06-01T08:00:00"}]`))
	})
	client, store := newTestClient(t, mux)

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	err := client.SaveReminder(context.Background(), "Morning", reminderFixture(true, "08:30", 2))
	if err != nil {
		t.Fatalf("SaveReminder: %v", err)
	}

	if reminderBody["time"] != "08:30" {
		t.Errorf("time = %v, want 08:30", reminderBody["time"])
	}
	if repeat, _ := reminderBody["repeatDays"].(float64); repeat != 2 {
		t.Errorf("repeatDays = %v, want 2", reminderBody["repeatDays"])
	}
	if userID, _ := reminderBody["userId"].(float64); userID != 7 {
		t.Errorf("userId = %v, want 7", reminderBody["userId"])
	}

	notifications, err := client.ListNotifications(context.Background(), "Morning")
	if err != nil {
		t.Fatalf("ListNotifications: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Subject != "Unpaid reminder" {
		t.Errorf("notifications = %+v", notifications)
	}
}

func TestGetReminderDefaults(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"enabled":false}`))
	}))

	if err := store.SetUserID("7"); err != nil {
		t.Fatal(err)
	}

	reminder, err := client.GetReminder(context.Background(), "Morning")
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if reminder.Time != "08:00" {
		t.Errorf("default time = %q, want 08:00", reminder.Time)
	}
	if reminder.RepeatDays != 1 {
		t.Errorf("default repeatDays = %d, want 1", reminder.RepeatDays)
	}
}
