package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "vetclinic-api/internal/adapters/storage/memory"
	pg "vetclinic-api/internal/adapters/storage/postgres"
	"vetclinic-api/internal/domain/appointments"
	"vetclinic-api/internal/domain/clients"
	"vetclinic-api/internal/domain/dashboard"
	"vetclinic-api/internal/domain/doctors"
	"vetclinic-api/internal/domain/inventory"
	"vetclinic-api/internal/domain/pets"
	"vetclinic-api/internal/domain/settings"
	"vetclinic-api/internal/domain/species"
	"vetclinic-api/internal/middleware"
	"vetclinic-api/internal/platform/logger"
	"vetclinic-api/internal/ports/auth"

	_ "vetclinic-api/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger     // puede ser nil

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	LowStockThreshold int
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Logger != nil {
		r.Use(middleware.RequestLog(opts.Logger))
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		clientRepo    clients.Repository
		speciesRepo   species.Repository
		petRepo       pets.Repository
		doctorRepo    doctors.Repository
		apptRepo      appointments.Repository
		inventoryRepo inventory.Repository
		settingsRepo  settings.Repository
		dashRepo      dashboard.Repository
		counters      dashboard.Counters
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		clientRepo = pg.NewClientsRepo(db)
		speciesRepo = pg.NewSpeciesRepo(db)
		petRepo = pg.NewPetsRepo(db)
		doctorRepo = pg.NewDoctorsRepo(db)
		apptRepo = pg.NewAppointmentsRepo(db)
		inventoryRepo = pg.NewInventoryRepo(db)
		settingsRepo = pg.NewSettingsRepo(db)
		dashRepo = pg.NewDashboardRepo(db)
		counters = pg.Counters{DB: db}
	} else {
		memClients := mem.NewClientsRepo()
		memSpecies := mem.NewSpeciesRepo()
		memPets := mem.NewPetsRepo(memClients, memSpecies)
		memDoctors := mem.NewDoctorsRepo(devDoctors()...)
		memAppts := mem.NewAppointmentsRepo(memPets, memClients, memDoctors, memSpecies)
		memInventory := mem.NewInventoryRepo()

		clientRepo = memClients
		speciesRepo = memSpecies
		petRepo = memPets
		doctorRepo = memDoctors
		apptRepo = memAppts
		inventoryRepo = memInventory
		settingsRepo = mem.NewSettingsRepo()
		dashRepo = mem.NewDashboardRepo(memAppts, memPets, memDoctors)
		counters = mem.Counters{
			Pets:      memPets,
			Clients:   memClients,
			Appts:     memAppts,
			Doctors:   memDoctors,
			Inventory: memInventory,
		}
	}

	// Services por módulo
	clientsSvc := clients.NewService(clientRepo)
	speciesSvc := species.NewService(speciesRepo)
	petsSvc := pets.NewService(petRepo)
	doctorsSvc := doctors.NewService(doctorRepo)
	apptsSvc := appointments.NewService(apptRepo, petsSvc, clientsSvc, speciesSvc)
	inventorySvc := inventory.NewService(inventoryRepo)
	settingsSvc := settings.NewService(settingsRepo)
	dashSvc := dashboard.NewService(dashRepo, counters, apptsSvc, petsSvc, opts.LowStockThreshold)

	// Rutas por módulo, bajo /api como consume el front
	r.Route("/api", func(api chi.Router) {
		appointments.RegisterRoutes(api, apptsSvc)
		clients.RegisterRoutes(api, clientsSvc)
		pets.RegisterRoutes(api, petsSvc)
		doctors.RegisterRoutes(api, doctorsSvc)
		inventory.RegisterRoutes(api, inventorySvc)
		settings.RegisterRoutes(api, settingsSvc)
		dashboard.RegisterRoutes(api, dashSvc)
	})

	return r
}

// devDoctors arranca el modo in-memory con doctores de ejemplo:
// no hay endpoint de alta y el booking necesita doctor_id válidos.
func devDoctors() []doctors.Doctor {
	return []doctors.Doctor{
		{ID: "d2f3c3de-54d5-4e3b-9a53-5c6b7c1a0001", FirstName: "Ana", LastName: "García"},
		{ID: "d2f3c3de-54d5-4e3b-9a53-5c6b7c1a0002", FirstName: "Luis", LastName: "Martínez"},
		{ID: "d2f3c3de-54d5-4e3b-9a53-5c6b7c1a0003", FirstName: "Sofía", LastName: "Rojas"},
	}
}
