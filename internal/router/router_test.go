package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vetclinic-api/internal/router"
)

const adminID = "admin-1"

func TestHTTP_EndToEnd_PublicBookingFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	doctorID := firstDoctorID(t, ts.URL)
	date := time.Now().AddDate(0, 0, 3).Format("2006-01-02")

	// 1) Sin auth no se listan turnos
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/appointments", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 listing without auth, got %d", st)
		}
	}

	// 2) El slot arranca libre
	if !checkAvailability(t, ts.URL, doctorID, date, "10:00") {
		t.Fatalf("expected slot free before booking")
	}

	// 3) Booking público: crea cliente, especie, raza, mascota y turno
	booking := map[string]any{
		"client_name":      "Carlos Ruiz",
		"client_phone":     "5559876543",
		"client_email":     "carlos@example.com",
		"pet_name":         "Rocky",
		"pet_type":         "dog",
		"doctor_id":        doctorID,
		"appointment_date": date,
		"appointment_time": "10:00",
		"service_type":     "vaccination",
	}

	st, body := doReq(t, ts.URL, "POST", "/api/appointments/public", "", booking)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 public booking, got %d body=%s", st, string(body))
	}

	var appt struct {
		ID       string `json:"id"`
		PetID    string `json:"pet_id"`
		ClientID string `json:"client_id"`
		Reason   string `json:"reason"`
		Status   string `json:"status"`
	}
	decodeData(t, body, &appt)
	if appt.ID == "" || appt.PetID == "" || appt.ClientID == "" {
		t.Fatalf("booking response missing ids: %s", string(body))
	}
	if appt.Status != "scheduled" {
		t.Fatalf("expected scheduled, got %s", appt.Status)
	}
	if appt.Reason != "vaccination" {
		t.Fatalf("expected service type as reason, got %s", appt.Reason)
	}

	// 4) El slot quedó ocupado, otra hora sigue libre
	if checkAvailability(t, ts.URL, doctorID, date, "10:00") {
		t.Fatalf("expected slot taken after booking")
	}
	if !checkAvailability(t, ts.URL, doctorID, date, "10:30") {
		t.Fatalf("expected 10:30 free")
	}

	// 5) Re-enviar el mismo booking choca contra el slot
	{
		st, body := doReq(t, ts.URL, "POST", "/api/appointments/public", "", booking)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 rebooking same slot, got %d body=%s", st, string(body))
		}
	}

	// 6) La mascota quedó creada con especie/raza default y next_appointment
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets/"+appt.PetID, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
		}

		var pet struct {
			Name            string  `json:"name"`
			SpeciesName     string  `json:"species_name"`
			BreedName       string  `json:"breed_name"`
			NextAppointment *string `json:"next_appointment"`
		}
		decodeData(t, body, &pet)
		if pet.Name != "Rocky" {
			t.Fatalf("expected pet Rocky, got %q", pet.Name)
		}
		if pet.SpeciesName != "dog" || pet.BreedName != "Unknown" {
			t.Fatalf("expected dog/Unknown, got %q/%q", pet.SpeciesName, pet.BreedName)
		}
		if pet.NextAppointment == nil || *pet.NextAppointment != date {
			t.Fatalf("expected next_appointment %s, got %v", date, pet.NextAppointment)
		}
	}

	// 7) Cancelar libera el slot
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/appointments/"+appt.ID, adminID, map[string]any{
			"status": "cancelled",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
	}
	if !checkAvailability(t, ts.URL, doctorID, date, "10:00") {
		t.Fatalf("expected slot free after cancellation")
	}

	// 8) Delete y delete repetido
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/appointments/"+appt.ID, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/api/appointments/"+appt.ID, adminID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 on second delete, got %d", st)
		}
	}
}

func TestHTTP_AdminCreate_SlotConflictAndSearch(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	doctorID := firstDoctorID(t, ts.URL)
	date := time.Now().AddDate(0, 0, 5).Format("2006-01-02")

	appt := bookPublic(t, ts.URL, doctorID, date, "09:00")

	// crear con FKs existentes en otra hora
	{
		st, body := doReq(t, ts.URL, "POST", "/api/appointments", adminID, map[string]any{
			"pet_id":           appt.PetID,
			"client_id":        appt.ClientID,
			"doctor_id":        doctorID,
			"appointment_date": date,
			"appointment_time": "09:30",
			"reason":           "follow-up checkup",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 admin create, got %d body=%s", st, string(body))
		}
	}

	// mismo slot => 400
	{
		st, body := doReq(t, ts.URL, "POST", "/api/appointments", adminID, map[string]any{
			"pet_id":           appt.PetID,
			"client_id":        appt.ClientID,
			"doctor_id":        doctorID,
			"appointment_date": date,
			"appointment_time": "09:00",
			"reason":           "conflicting",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for taken slot, got %d body=%s", st, string(body))
		}
	}

	// pet inexistente => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/appointments", adminID, map[string]any{
			"pet_id":           "no-such-pet",
			"client_id":        appt.ClientID,
			"doctor_id":        doctorID,
			"appointment_date": date,
			"appointment_time": "11:00",
			"reason":           "checkup",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown pet, got %d", st)
		}
	}

	// search matchea por nombre de mascota
	{
		st, body := doReq(t, ts.URL, "GET", "/api/appointments/search?q=Rocky", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
		}
		var resp struct {
			Count int `json:"count"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal search: %v", err)
		}
		if resp.Count != 2 {
			t.Fatalf("expected 2 matches for Rocky, got %d body=%s", resp.Count, string(body))
		}
	}

	// search sin query => 400
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/appointments/search", adminID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 search without query, got %d", st)
		}
	}
}

func TestHTTP_DashboardStats(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	doctorID := firstDoctorID(t, ts.URL)
	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	bookPublic(t, ts.URL, doctorID, date, "12:00")

	st, body := doReq(t, ts.URL, "GET", "/api/dashboard/stats", adminID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
	}

	var data struct {
		Stats struct {
			TotalPets         int `json:"total_pets"`
			TotalClients      int `json:"total_clients"`
			TotalAppointments int `json:"total_appointments"`
			TotalDoctors      int `json:"total_doctors"`
		} `json:"stats"`
		AppointmentsByDoctor []struct {
			DoctorName       string `json:"doctor_name"`
			AppointmentCount int    `json:"appointment_count"`
		} `json:"appointments_by_doctor"`
	}
	decodeData(t, body, &data)

	if data.Stats.TotalPets != 1 || data.Stats.TotalClients != 1 || data.Stats.TotalAppointments != 1 {
		t.Fatalf("expected totals 1/1/1, got %+v", data.Stats)
	}
	if data.Stats.TotalDoctors == 0 {
		t.Fatalf("expected seeded doctors")
	}
	// todos los doctores aparecen, incluso con 0 turnos
	if len(data.AppointmentsByDoctor) != data.Stats.TotalDoctors {
		t.Fatalf("expected %d doctor rows, got %d", data.Stats.TotalDoctors, len(data.AppointmentsByDoctor))
	}
	total := 0
	for _, d := range data.AppointmentsByDoctor {
		total += d.AppointmentCount
	}
	if total != 1 {
		t.Fatalf("expected 1 appointment across doctors, got %d", total)
	}

	// overview agrupado por status
	st, body = doReq(t, ts.URL, "GET", "/api/dashboard/overview?filter=status", adminID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 overview, got %d body=%s", st, string(body))
	}
	var overview struct {
		AppointmentsByStatus []struct {
			Label string `json:"label"`
			Count int    `json:"count"`
		} `json:"appointments_by_status"`
	}
	decodeData(t, body, &overview)
	found := false
	for _, g := range overview.AppointmentsByStatus {
		if g.Label == "scheduled" && g.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected scheduled:1 in grouping, got %+v", overview.AppointmentsByStatus)
	}
}

func TestHTTP_Settings_Roundtrip(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// default lazy
	{
		st, body := doReq(t, ts.URL, "GET", "/api/settings", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get settings, got %d body=%s", st, string(body))
		}
		var s struct {
			ClinicName string `json:"clinic_name"`
		}
		decodeData(t, body, &s)
		if s.ClinicName != "Veterinary Clinic" {
			t.Fatalf("expected default clinic name, got %q", s.ClinicName)
		}
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/api/settings", adminID, map[string]any{
			"clinic_name": "Pata Sana",
			"phone":       "5551112222",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 save settings, got %d body=%s", st, string(body))
		}
	}

	{
		st, body := doReq(t, ts.URL, "GET", "/api/settings", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 re-get settings, got %d", st)
		}
		var s struct {
			ClinicName string `json:"clinic_name"`
			Phone      string `json:"phone"`
		}
		decodeData(t, body, &s)
		if s.ClinicName != "Pata Sana" || s.Phone != "5551112222" {
			t.Fatalf("expected saved settings, got %+v", s)
		}
	}
}

// -------------------------
// Helpers
// -------------------------

type bookedAppt struct {
	ID       string `json:"id"`
	PetID    string `json:"pet_id"`
	ClientID string `json:"client_id"`
}

func bookPublic(t *testing.T, baseURL, doctorID, date, timeSlot string) bookedAppt {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/appointments/public", "", map[string]any{
		"client_name":      "Carlos Ruiz",
		"client_phone":     "5559876543",
		"pet_name":         "Rocky",
		"pet_type":         "dog",
		"doctor_id":        doctorID,
		"appointment_date": date,
		"appointment_time": timeSlot,
		"service_type":     "checkup",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 booking, got %d body=%s", st, string(body))
	}

	var a bookedAppt
	decodeData(t, body, &a)
	if a.ID == "" {
		t.Fatalf("booking: missing id body=%s", string(body))
	}
	return a
}

func firstDoctorID(t *testing.T, baseURL string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/api/doctors", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list doctors, got %d body=%s", st, string(body))
	}

	var doctors []struct {
		ID string `json:"id"`
	}
	decodeData(t, body, &doctors)
	if len(doctors) == 0 {
		t.Fatalf("expected seeded doctors, got none")
	}
	return doctors[0].ID
}

func checkAvailability(t *testing.T, baseURL, doctorID, date, timeSlot string) bool {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/appointments/check-availability", "", map[string]any{
		"doctor_id":        doctorID,
		"appointment_date": date,
		"appointment_time": timeSlot,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 check-availability, got %d body=%s", st, string(body))
	}

	var resp struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("unmarshal availability: %v", err)
	}
	return resp.Available
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

func decodeData(t *testing.T, body []byte, v any) {
	t.Helper()

	var env struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v body=%s", err, string(body))
	}
	if !env.Success {
		t.Fatalf("expected success envelope, body=%s", string(body))
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("unmarshal data: %v body=%s", err, string(body))
	}
}
