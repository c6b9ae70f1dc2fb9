package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/config"
)

type SimConfig struct {
	BackendURL    string
	Duration      time.Duration
	Workers       int
	Students      int
	BookingRatio  float64
	ListRatio     float64
	AdminRatio    float64
	AdminUser     string
	AdminPassword string
	Location      *time.Location
}

// DataPool is what the workers draw from: signed-in students and the
// appointment ids seen in list responses.
type DataPool struct {
	Users        []appointment.ID
	mu           sync.RWMutex
	appointments map[string]appointment.Status
	ids          []string
}

func (dp *DataPool) Observe(list []appointment.Appointment) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	if dp.appointments == nil {
		dp.appointments = make(map[string]appointment.Status)
	}
	for _, a := range list {
		if _, seen := dp.appointments[a.ID]; !seen {
			dp.ids = append(dp.ids, a.ID)
		}
		dp.appointments[a.ID] = a.Status
	}
}

func (dp *DataPool) RandomAppointment(rng *rand.Rand) (string, appointment.Status, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.ids) == 0 {
		return "", "", false
	}
	id := dp.ids[rng.Intn(len(dp.ids))]
	return id, dp.appointments[id], true
}

func (dp *DataPool) SetStatus(id string, s appointment.Status) {
	dp.mu.Lock()
	dp.appointments[id] = s
	dp.mu.Unlock()
}

type Metrics struct {
	Booking      OperationMetrics
	ListOwn      OperationMetrics
	ListAll      OperationMetrics
	UpdateStatus OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	client  *backend.Client
	admin   bool
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d students=%d booking=%.2f list=%.2f admin=%.2f",
		cfg.Duration, cfg.Workers, cfg.Students, cfg.BookingRatio, cfg.ListRatio, cfg.AdminRatio)

	sim := &Simulator{
		config: cfg,
		client: backend.New(cfg.BackendURL, 10*time.Second),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dataPool, err := sim.prepare(ctx)
	if err != nil {
		log.Fatalf("prepare data pool: %v", err)
	}
	sim.pool = dataPool

	log.Printf("loaded: %d students, admin=%t", len(dataPool.Users), sim.admin)

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	baseCfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load base config: %v", err)
	}

	cfg := SimConfig{
		BackendURL:    getEnv("SIM_BACKEND_URL", baseCfg.BackendURL),
		Duration:      getDuration("SIM_DURATION", 30*time.Second),
		Workers:       getInt("SIM_WORKERS", 10),
		Students:      getInt("SIM_STUDENTS", 20),
		BookingRatio:  getFloat("SIM_BOOKING_RATIO", 0.3),
		ListRatio:     getFloat("SIM_LIST_RATIO", 0.5),
		AdminRatio:    getFloat("SIM_ADMIN_RATIO", 0.2),
		AdminUser:     os.Getenv("SIM_ADMIN_USER"),
		AdminPassword: os.Getenv("SIM_ADMIN_PASSWORD"),
		Location:      baseCfg.Location,
	}

	if cfg.AdminUser == "" {
		cfg.AdminRatio = 0
	}

	// Normalize ratios
	total := cfg.BookingRatio + cfg.ListRatio + cfg.AdminRatio
	if total > 0 {
		cfg.BookingRatio /= total
		cfg.ListRatio /= total
		cfg.AdminRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.Students <= 0 {
		return fmt.Errorf("SIM_STUDENTS must be > 0")
	}
	return nil
}

// prepare registers and signs in fake students, and signs in the admin when configured.
func (s *Simulator) prepare(ctx context.Context) (*DataPool, error) {
	dataPool := &DataPool{}
	faker := gofakeit.New(uint64(time.Now().UnixNano()))
	const password = "simulate123"

	for i := 0; i < s.config.Students; i++ {
		username := fmt.Sprintf("sim_%s_%d", faker.Username(), faker.Number(1000, 9999))
		_, err := s.client.Register(ctx, backend.RegisterRequest{
			Username:  username,
			Password:  password,
			IDNumber:  faker.DigitN(8),
			Birthdate: faker.DateRange(time.Date(1998, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2006, 1, 1, 0, 0, 0, 0, time.UTC)).Format(appointment.DayLayout),
		})
		if err != nil {
			log.Printf("register %s: %v", username, err)
			continue
		}
		user, err := s.client.Login(ctx, backend.LoginRequest{Username: username, Password: password})
		if err != nil {
			return nil, fmt.Errorf("login %s: %w", username, err)
		}
		dataPool.Users = append(dataPool.Users, user.UserID)
	}

	if s.config.AdminUser != "" {
		u, err := s.client.Login(ctx, backend.LoginRequest{Username: s.config.AdminUser, Password: s.config.AdminPassword})
		if err != nil {
			return nil, fmt.Errorf("admin login: %w", err)
		}
		if !u.IsAdmin() {
			return nil, fmt.Errorf("user %s is not an admin", u.Username)
		}
		s.admin = true
		all, err := s.client.ListAllAppointments(ctx)
		if err != nil {
			return nil, fmt.Errorf("load appointments: %w", err)
		}
		dataPool.Observe(all)
	}

	if len(dataPool.Users) == 0 {
		return nil, fmt.Errorf("no students registered")
	}
	return dataPool, nil
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < s.config.BookingRatio:
				s.doBooking(ctx, rng)
			case r < s.config.BookingRatio+s.config.ListRatio:
				s.doListOwn(ctx, rng)
			case rng.Intn(2) == 0:
				s.doListAll(ctx)
			default:
				s.doUpdateStatus(ctx, rng)
			}
		}
	}
}

func (s *Simulator) randomUser(rng *rand.Rand) appointment.ID {
	return s.pool.Users[rng.Intn(len(s.pool.Users))]
}

func (s *Simulator) doBooking(ctx context.Context, rng *rand.Rand) {
	now := time.Now().In(s.config.Location)
	req := backend.CreateAppointmentRequest{
		UserID:        s.randomUser(rng),
		Date:          appointment.Today(now.AddDate(0, 0, rng.Intn(14))),
		PreferredTime: appointment.TimeSlots[rng.Intn(len(appointment.TimeSlots))],
		ConcernType:   appointment.Concerns[rng.Intn(len(appointment.Concerns))],
	}

	start := time.Now()
	_, err := s.client.CreateAppointment(ctx, req)
	s.metrics.Booking.Record(time.Since(start), err)
}

func (s *Simulator) doListOwn(ctx context.Context, rng *rand.Rand) {
	start := time.Now()
	list, err := s.client.ListAppointments(ctx, s.randomUser(rng))
	s.metrics.ListOwn.Record(time.Since(start), err)
	if err == nil {
		s.pool.Observe(list)
	}
}

func (s *Simulator) doListAll(ctx context.Context) {
	if !s.admin {
		return
	}
	start := time.Now()
	list, err := s.client.ListAllAppointments(ctx)
	s.metrics.ListAll.Record(time.Since(start), err)
	if err == nil {
		s.pool.Observe(list)
	}
}

func (s *Simulator) doUpdateStatus(ctx context.Context, rng *rand.Rand) {
	if !s.admin {
		return
	}
	id, current, ok := s.pool.RandomAppointment(rng)
	if !ok {
		return
	}
	actions := appointment.AvailableActions(current)
	if len(actions) == 0 {
		return
	}
	target := actions[rng.Intn(len(actions))].Target

	start := time.Now()
	_, err := s.client.UpdateStatus(ctx, id, target)
	s.metrics.UpdateStatus.Record(time.Since(start), err)
	if err == nil {
		s.pool.SetStatus(id, target)
	}
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Backend: %s\n", s.config.BackendURL)
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Booking", &s.metrics.Booking)
	printOperationReport("List own appointments", &s.metrics.ListOwn)
	printOperationReport("List all appointments", &s.metrics.ListAll)
	printOperationReport("Update status", &s.metrics.UpdateStatus)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
