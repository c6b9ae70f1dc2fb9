package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/hackgods/counseling-scheduler/internal/appointment"
	"github.com/hackgods/counseling-scheduler/internal/backend"
	"github.com/hackgods/counseling-scheduler/internal/config"
)

// seedPassword is shared by every seeded student so they can be signed in later.
const seedPassword = "counsel123"

type student struct {
	Username string
	IDNumber string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	students := getInt("SEED_STUDENTS", 25)
	perStudent := getInt("SEED_APPOINTMENTS", 2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := backend.New(cfg.BackendURL, 10*time.Second)
	if err := client.Ping(ctx); err != nil {
		log.Fatalf("backend %s unreachable: %v", client.BaseURL(), err)
	}

	faker := gofakeit.New(uint64(time.Now().UnixNano()))
	today := mustDay(cfg.Now())

	seeded, err := seedStudents(ctx, client, faker, students)
	if err != nil {
		log.Fatalf("seed students: %v", err)
	}
	booked, err := seedAppointments(ctx, client, faker, seeded, perStudent, today)
	if err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Printf("seed complete students=%d appointments=%d password=%s", len(seeded), booked, seedPassword)
}

func seedStudents(ctx context.Context, client *backend.Client, faker *gofakeit.Faker, count int) ([]student, error) {
	log.Printf("seeding %d students", count)

	out := make([]student, 0, count)
	for i := 0; i < count; i++ {
		s := student{
			Username: fmt.Sprintf("%s%d", faker.Username(), faker.Number(10, 99)),
			IDNumber: fmt.Sprintf("%d-%s", faker.Number(2018, 2025), faker.DigitN(5)),
		}
		birth := faker.DateRange(time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2007, 12, 31, 0, 0, 0, 0, time.UTC))

		_, err := client.Register(ctx, backend.RegisterRequest{
			Username:  s.Username,
			Password:  seedPassword,
			IDNumber:  s.IDNumber,
			Birthdate: birth.Format(appointment.DayLayout),
		})
		if code := backend.StatusCode(err); code == http.StatusBadRequest || code == http.StatusConflict {
			log.Printf("skip student username=%s reason=%q", s.Username, backend.Message(err, "rejected"))
			continue
		}
		if err != nil {
			return out, fmt.Errorf("register %s: %w", s.Username, err)
		}
		out = append(out, s)
	}

	log.Printf("students seeded: %d/%d", len(out), count)
	return out, nil
}

func seedAppointments(ctx context.Context, client *backend.Client, faker *gofakeit.Faker, students []student, perStudent int, today time.Time) (int, error) {
	log.Printf("seeding up to %d appointments per student", perStudent)

	booked := 0
	for _, s := range students {
		user, err := client.Login(ctx, backend.LoginRequest{Username: s.Username, Password: seedPassword})
		if err != nil {
			return booked, fmt.Errorf("login %s: %w", s.Username, err)
		}

		for i := 0; i < perStudent; i++ {
			day := faker.DateRange(today, today.AddDate(0, 0, 30))
			req := backend.CreateAppointmentRequest{
				UserID:        user.UserID,
				Date:          day.Format(appointment.DayLayout),
				PreferredTime: appointment.TimeSlots[faker.Number(0, len(appointment.TimeSlots)-1)],
				ConcernType:   appointment.Concerns[faker.Number(0, len(appointment.Concerns)-1)],
			}
			if _, err := client.CreateAppointment(ctx, req); err != nil {
				log.Printf("skip appointment username=%s date=%s err=%v", s.Username, req.Date, err)
				continue
			}
			booked++
		}
	}

	log.Printf("appointments seeded: %d", booked)
	return booked, nil
}

func mustDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
