package appointments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vetclinic-api/internal/domain/clients"
	"vetclinic-api/internal/domain/pets"
	"vetclinic-api/internal/domain/species"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Appointment
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	if a.Status == StatusScheduled && !r.slotFree(a.DoctorID, a.Date, a.Time, "") {
		return ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Appointment) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	if a.Status == StatusScheduled && !r.slotFree(a.DoctorID, a.Date, a.Time, a.ID) {
		return ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(ctx context.Context) ([]Appointment, error) {
	out := make([]Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) {
	return len(r.byID), nil
}

func (r *testRepo) Search(ctx context.Context, query string) ([]Appointment, error) {
	return r.List(ctx)
}

func (r *testRepo) ListByDate(ctx context.Context, date string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListBetween(ctx context.Context, from, to string) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if a.Date >= from && a.Date <= to {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) SlotAvailable(ctx context.Context, doctorID, date, timeSlot, excludeID string) (bool, error) {
	return r.slotFree(doctorID, date, timeSlot, excludeID), nil
}

func (r *testRepo) slotFree(doctorID, date, timeSlot, excludeID string) bool {
	for _, a := range r.byID {
		if a.ID == excludeID {
			continue
		}
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeSlot && a.Status == StatusScheduled {
			return false
		}
	}
	return true
}

// -------------------------
// Test directories
// -------------------------

type testPets struct {
	byID   map[string]pets.Pet
	nextID int
}

func newTestPets() *testPets {
	return &testPets{byID: map[string]pets.Pet{}}
}

func (d *testPets) add(id, name, clientID string) {
	d.byID[id] = pets.Pet{ID: id, Name: name, ClientID: clientID}
}

func (d *testPets) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := d.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (d *testPets) FindOrCreate(ctx context.Context, name, speciesID, breedID, clientID string) (pets.Pet, error) {
	for _, p := range d.byID {
		if p.ClientID == clientID && p.Name == name {
			return p, nil
		}
	}
	d.nextID++
	p := pets.Pet{
		ID:        fmt.Sprintf("pet-%d", d.nextID),
		Name:      name,
		SpeciesID: speciesID,
		BreedID:   breedID,
		ClientID:  clientID,
	}
	d.byID[p.ID] = p
	return p, nil
}

func (d *testPets) SetNextAppointment(ctx context.Context, petID, date string) error {
	p, ok := d.byID[petID]
	if !ok {
		return pets.ErrNotFound
	}
	p.NextAppointment = &date
	d.byID[petID] = p
	return nil
}

type testClients struct {
	byID   map[string]clients.Client
	nextID int
}

func newTestClients() *testClients {
	return &testClients{byID: map[string]clients.Client{}}
}

func (d *testClients) add(id, name, phone string) {
	d.byID[id] = clients.Client{ID: id, Name: name, Phone: phone}
}

func (d *testClients) GetByID(ctx context.Context, id string) (clients.Client, error) {
	c, ok := d.byID[id]
	if !ok {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, nil
}

func (d *testClients) FindOrCreateByPhone(ctx context.Context, name, phone, email string) (clients.Client, error) {
	for _, c := range d.byID {
		if c.Phone == phone {
			return c, nil
		}
	}
	d.nextID++
	c := clients.Client{
		ID:    fmt.Sprintf("client-%d", d.nextID),
		Name:  name,
		Phone: phone,
		Email: email,
	}
	d.byID[c.ID] = c
	return c, nil
}

type testCatalog struct {
	species map[string]species.Species // name -> fila
	breeds  map[string]species.Breed   // speciesID+"/"+name -> fila
	nextID  int
}

func newTestCatalog() *testCatalog {
	return &testCatalog{
		species: map[string]species.Species{},
		breeds:  map[string]species.Breed{},
	}
}

func (c *testCatalog) FindOrCreateSpecies(ctx context.Context, name string) (species.Species, error) {
	if s, ok := c.species[name]; ok {
		return s, nil
	}
	c.nextID++
	s := species.Species{ID: fmt.Sprintf("species-%d", c.nextID), Name: name}
	c.species[name] = s
	return s, nil
}

func (c *testCatalog) FindOrCreateBreed(ctx context.Context, speciesID, name string) (species.Breed, error) {
	if name == "" {
		name = species.DefaultBreedName
	}
	key := speciesID + "/" + name
	if b, ok := c.breeds[key]; ok {
		return b, nil
	}
	c.nextID++
	b := species.Breed{ID: fmt.Sprintf("breed-%d", c.nextID), SpeciesID: speciesID, Name: name}
	c.breeds[key] = b
	return b, nil
}

// -------------------------
// Fixture
// -------------------------

type fixture struct {
	repo    *testRepo
	pets    *testPets
	clients *testClients
	catalog *testCatalog
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:    newTestRepo(),
		pets:    newTestPets(),
		clients: newTestClients(),
		catalog: newTestCatalog(),
	}
	f.svc = NewService(f.repo, f.pets, f.clients, f.catalog)
	f.svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}

	f.clients.add("client-a", "Laura Pérez", "5551234567")
	f.pets.add("pet-a", "Milo", "client-a")
	return f
}

func (f *fixture) createScheduled(t *testing.T, doctorID, date, timeSlot string) Appointment {
	t.Helper()

	a, err := f.svc.Create(context.Background(), CreateInput{
		PetID:    "pet-a",
		ClientID: "client-a",
		DoctorID: doctorID,
		Date:     date,
		Time:     timeSlot,
		Reason:   "checkup",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return a
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsToScheduled(t *testing.T) {
	f := newFixture()

	a := f.createScheduled(t, "doc-1", "2026-03-15", "10:00")
	if a.Status != StatusScheduled {
		t.Fatalf("expected status scheduled, got %s", a.Status)
	}
	if a.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestService_Create_RejectsTakenSlot(t *testing.T) {
	f := newFixture()

	f.createScheduled(t, "doc-1", "2026-03-15", "10:00")

	_, err := f.svc.Create(context.Background(), CreateInput{
		PetID:    "pet-a",
		ClientID: "client-a",
		DoctorID: "doc-1",
		Date:     "2026-03-15",
		Time:     "10:00",
		Reason:   "vaccination",
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	n, _ := f.repo.Count(context.Background())
	if n != 1 {
		t.Fatalf("expected exactly 1 appointment persisted, got %d", n)
	}
}

func TestService_Create_SameTimeDifferentDoctor_OK(t *testing.T) {
	f := newFixture()

	f.createScheduled(t, "doc-1", "2026-03-15", "10:00")
	f.createScheduled(t, "doc-2", "2026-03-15", "10:00")

	n, _ := f.repo.Count(context.Background())
	if n != 2 {
		t.Fatalf("expected 2 appointments, got %d", n)
	}
}

func TestService_Create_UnknownPet(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{
		PetID:    "no-such-pet",
		ClientID: "client-a",
		DoctorID: "doc-1",
		Date:     "2026-03-15",
		Time:     "10:00",
		Reason:   "checkup",
	})
	if !errors.Is(err, ErrUnknownPet) {
		t.Fatalf("expected ErrUnknownPet, got %v", err)
	}

	n, _ := f.repo.Count(context.Background())
	if n != 0 {
		t.Fatalf("expected nothing persisted, got %d", n)
	}
}

func TestService_Create_UnknownClient(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), CreateInput{
		PetID:    "pet-a",
		ClientID: "no-such-client",
		DoctorID: "doc-1",
		Date:     "2026-03-15",
		Time:     "10:00",
		Reason:   "checkup",
	})
	if !errors.Is(err, ErrUnknownClient) {
		t.Fatalf("expected ErrUnknownClient, got %v", err)
	}
}

func TestService_Create_ValidatesSlotFields(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing doctor", CreateInput{PetID: "pet-a", ClientID: "client-a", Date: "2026-03-15", Time: "10:00", Reason: "checkup"}},
		{"bad date", CreateInput{PetID: "pet-a", ClientID: "client-a", DoctorID: "doc-1", Date: "15/03/2026", Time: "10:00", Reason: "checkup"}},
		{"bad time", CreateInput{PetID: "pet-a", ClientID: "client-a", DoctorID: "doc-1", Date: "2026-03-15", Time: "25:99", Reason: "checkup"}},
		{"bad status", CreateInput{PetID: "pet-a", ClientID: "client-a", DoctorID: "doc-1", Date: "2026-03-15", Time: "10:00", Reason: "checkup", Status: "pending"}},
	}
	for _, tc := range cases {
		if _, err := f.svc.Create(context.Background(), tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestService_CheckAvailability(t *testing.T) {
	f := newFixture()

	ok, err := f.svc.CheckAvailability(context.Background(), "doc-1", "2026-03-15", "10:00")
	if err != nil {
		t.Fatalf("CheckAvailability error: %v", err)
	}
	if !ok {
		t.Fatalf("expected free slot before create")
	}

	f.createScheduled(t, "doc-1", "2026-03-15", "10:00")

	ok, _ = f.svc.CheckAvailability(context.Background(), "doc-1", "2026-03-15", "10:00")
	if ok {
		t.Fatalf("expected slot taken after create")
	}

	// otra hora sigue libre: el match de slot es exacto
	ok, _ = f.svc.CheckAvailability(context.Background(), "doc-1", "2026-03-15", "10:30")
	if !ok {
		t.Fatalf("expected 10:30 free")
	}
}

func TestService_CheckAvailability_CancelledFreesSlot(t *testing.T) {
	f := newFixture()

	a := f.createScheduled(t, "doc-1", "2026-03-15", "10:00")

	st := "cancelled"
	if _, err := f.svc.Update(context.Background(), a.ID, UpdateInput{Status: &st}); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	ok, _ := f.svc.CheckAvailability(context.Background(), "doc-1", "2026-03-15", "10:00")
	if !ok {
		t.Fatalf("expected slot free after cancellation")
	}
}

func TestService_Update_PartialMerge(t *testing.T) {
	f := newFixture()

	a := f.createScheduled(t, "doc-1", "2026-03-15", "10:00")

	later := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return later }

	notes := "bring vaccination card"
	updated, err := f.svc.Update(context.Background(), a.ID, UpdateInput{Notes: &notes})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Notes != notes {
		t.Fatalf("expected notes updated, got %q", updated.Notes)
	}
	if updated.DoctorID != "doc-1" || updated.Date != "2026-03-15" || updated.Time != "10:00" {
		t.Fatalf("expected untouched fields to survive, got %+v", updated)
	}
	if updated.Reason != "checkup" {
		t.Fatalf("expected reason untouched, got %q", updated.Reason)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected UpdatedAt bumped")
	}
	if !updated.CreatedAt.Before(later) {
		t.Fatalf("expected CreatedAt untouched")
	}
}

func TestService_Update_OwnSlotDoesNotConflict(t *testing.T) {
	f := newFixture()

	a := f.createScheduled(t, "doc-1", "2026-03-15", "10:00")

	// re-enviar la misma terna no debe chocar contra sí mismo
	doc, date, tm := "doc-1", "2026-03-15", "10:00"
	if _, err := f.svc.Update(context.Background(), a.ID, UpdateInput{DoctorID: &doc, Date: &date, Time: &tm}); err != nil {
		t.Fatalf("Update onto own slot should succeed, got %v", err)
	}
}

func TestService_Update_RejectsMoveOntoTakenSlot(t *testing.T) {
	f := newFixture()

	f.createScheduled(t, "doc-1", "2026-03-15", "10:00")
	b := f.createScheduled(t, "doc-1", "2026-03-15", "11:00")

	tm := "10:00"
	_, err := f.svc.Update(context.Background(), b.ID, UpdateInput{Time: &tm})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken moving onto taken slot, got %v", err)
	}
}

func TestService_Update_NotFound(t *testing.T) {
	f := newFixture()

	notes := "x"
	_, err := f.svc.Update(context.Background(), "missing", UpdateInput{Notes: &notes})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_Twice(t *testing.T) {
	f := newFixture()

	a := f.createScheduled(t, "doc-1", "2026-03-15", "10:00")

	if err := f.svc.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := f.svc.Delete(context.Background(), a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_Search_RequiresQuery(t *testing.T) {
	f := newFixture()

	if _, err := f.svc.Search(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty query, got %v", err)
	}
}

func TestService_TodayAndUpcoming(t *testing.T) {
	f := newFixture()
	// now fijo: 2026-03-10

	f.createScheduled(t, "doc-1", "2026-03-10", "09:30") // hoy
	f.createScheduled(t, "doc-1", "2026-03-13", "09:30") // dentro de la ventana de 7 días
	f.createScheduled(t, "doc-1", "2026-03-25", "09:30") // fuera

	today, err := f.svc.Today(context.Background())
	if err != nil {
		t.Fatalf("Today error: %v", err)
	}
	if len(today) != 1 {
		t.Fatalf("expected 1 appointment today, got %d", len(today))
	}

	upcoming, err := f.svc.Upcoming(context.Background(), 0) // default 7
	if err != nil {
		t.Fatalf("Upcoming error: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming in default window, got %d", len(upcoming))
	}

	wide, _ := f.svc.Upcoming(context.Background(), 30)
	if len(wide) != 3 {
		t.Fatalf("expected 3 upcoming in 30-day window, got %d", len(wide))
	}
}

func TestService_Book_CreatesWholeChain(t *testing.T) {
	f := newFixture()

	a, err := f.svc.Book(context.Background(), BookingInput{
		ClientName:  "Carlos Ruiz",
		ClientPhone: "5559876543",
		ClientEmail: "carlos@example.com",
		PetName:     "Rocky",
		PetType:     "dog",
		DoctorID:    "doc-1",
		Date:        "2026-03-20",
		Time:        "15:00",
		ServiceType: "vaccination",
	})
	if err != nil {
		t.Fatalf("Book error: %v", err)
	}

	if a.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %s", a.Status)
	}
	if a.Reason != "vaccination" {
		t.Fatalf("expected service type as reason, got %q", a.Reason)
	}

	// se creó exactamente una especie y la raza default bajo ella
	if len(f.catalog.species) != 1 {
		t.Fatalf("expected 1 species, got %d", len(f.catalog.species))
	}
	sp := f.catalog.species["dog"]
	if _, ok := f.catalog.breeds[sp.ID+"/"+species.DefaultBreedName]; !ok {
		t.Fatalf("expected default breed under species, got %#v", f.catalog.breeds)
	}

	// la mascota quedó con next_appointment en la fecha del turno
	pet, err := f.pets.GetByID(context.Background(), a.PetID)
	if err != nil {
		t.Fatalf("GetByID pet error: %v", err)
	}
	if pet.NextAppointment == nil || *pet.NextAppointment != "2026-03-20" {
		t.Fatalf("expected next_appointment 2026-03-20, got %v", pet.NextAppointment)
	}
}

func TestService_Book_ReusesClientByPhone(t *testing.T) {
	f := newFixture()

	a1, err := f.svc.Book(context.Background(), BookingInput{
		ClientName:  "Carlos Ruiz",
		ClientPhone: "5559876543",
		PetName:     "Rocky",
		PetType:     "dog",
		DoctorID:    "doc-1",
		Date:        "2026-03-20",
		Time:        "15:00",
		ServiceType: "vaccination",
	})
	if err != nil {
		t.Fatalf("Book #1 error: %v", err)
	}

	// mismo teléfono, otro slot: debe reusar cliente y mascota
	a2, err := f.svc.Book(context.Background(), BookingInput{
		ClientName:  "C. Ruiz",
		ClientPhone: "5559876543",
		PetName:     "Rocky",
		PetType:     "dog",
		DoctorID:    "doc-1",
		Date:        "2026-03-21",
		Time:        "15:00",
		ServiceType: "checkup",
	})
	if err != nil {
		t.Fatalf("Book #2 error: %v", err)
	}

	if a1.ClientID != a2.ClientID {
		t.Fatalf("expected same client reused, got %s vs %s", a1.ClientID, a2.ClientID)
	}
	if a1.PetID != a2.PetID {
		t.Fatalf("expected same pet reused, got %s vs %s", a1.PetID, a2.PetID)
	}
}

func TestService_Book_RejectsTakenSlot(t *testing.T) {
	f := newFixture()

	in := BookingInput{
		ClientName:  "Carlos Ruiz",
		ClientPhone: "5559876543",
		PetName:     "Rocky",
		PetType:     "dog",
		DoctorID:    "doc-1",
		Date:        "2026-03-20",
		Time:        "15:00",
		ServiceType: "vaccination",
	}
	if _, err := f.svc.Book(context.Background(), in); err != nil {
		t.Fatalf("Book #1 error: %v", err)
	}
	if _, err := f.svc.Book(context.Background(), in); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken on duplicate slot, got %v", err)
	}

	n, _ := f.repo.Count(context.Background())
	if n != 1 {
		t.Fatalf("expected 1 appointment persisted, got %d", n)
	}
}

func TestService_Book_Validation(t *testing.T) {
	f := newFixture()

	base := BookingInput{
		ClientName:  "Carlos Ruiz",
		ClientPhone: "5559876543",
		PetName:     "Rocky",
		PetType:     "dog",
		DoctorID:    "doc-1",
		Date:        "2026-03-20",
		Time:        "15:00",
		ServiceType: "vaccination",
	}

	cases := []struct {
		name   string
		mutate func(*BookingInput)
	}{
		{"short phone", func(in *BookingInput) { in.ClientPhone = "12345" }},
		{"missing client name", func(in *BookingInput) { in.ClientName = "  " }},
		{"missing pet name", func(in *BookingInput) { in.PetName = "" }},
		{"bad pet type", func(in *BookingInput) { in.PetType = "dragon" }},
		{"bad service type", func(in *BookingInput) { in.ServiceType = "exorcism" }},
		{"bad date", func(in *BookingInput) { in.Date = "tomorrow" }},
		{"bad time", func(in *BookingInput) { in.Time = "3pm" }},
	}
	for _, tc := range cases {
		in := base
		tc.mutate(&in)
		if _, err := f.svc.Book(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	n, _ := f.repo.Count(context.Background())
	if n != 0 {
		t.Fatalf("expected nothing persisted, got %d", n)
	}
}
