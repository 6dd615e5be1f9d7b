package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"skillflip/internal/database"
	"skillflip/internal/domain"
	"skillflip/internal/repository"
)

func main() {
	db, err := database.Connect("skillflip.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM event_registrations")
	db.Exec("DELETE FROM events")
	db.Exec("DELETE FROM creator_availability")
	db.Exec("DELETE FROM skills")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	skills := repository.NewSkillRepository(db)
	windows := repository.NewAvailabilityRepository(db)
	events := repository.NewEventRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	admin := &domain.User{ID: "admin-1", Email: "admin@skillflip.io", FirstName: "Platform", LastName: "Admin", Role: domain.RoleAdmin}
	if err := users.Upsert(ctx, admin); err != nil {
		log.Fatal(err)
	}

	creators := []*domain.User{
		{ID: "creator-maya", Email: "maya@skillflip.io", FirstName: "Maya", LastName: "Chen", Role: domain.RoleCreator},
		{ID: "creator-jordan", Email: "jordan@skillflip.io", FirstName: "Jordan", LastName: "Reyes", Role: domain.RoleCreator},
	}
	for _, u := range creators {
		if err := users.Upsert(ctx, u); err != nil {
			log.Fatal(err)
		}
	}

	for i := 1; i <= 3; i++ {
		learner := &domain.User{
			ID:        fmt.Sprintf("learner-%d", i),
			Email:     fmt.Sprintf("learner%d@skillflip.io", i),
			FirstName: fmt.Sprintf("Learner%d", i),
			Role:      domain.RoleLearner,
		}
		if err := users.Upsert(ctx, learner); err != nil {
			log.Fatal(err)
		}
	}

	// ================== CATEGORIES ==================
	log.Println("Creating categories...")

	cooking := &domain.Category{Name: "Cooking", Slug: "cooking", Description: "From knife skills to fermentation", Color: "#e07a5f", Icon: "chef-hat"}
	music := &domain.Category{Name: "Music", Slug: "music", Description: "Instruments, theory and production", Color: "#3d405b", Icon: "music"}
	crafts := &domain.Category{Name: "Crafts", Slug: "crafts", Description: "Woodwork, ceramics and textiles", Color: "#81b29a", Icon: "scissors"}
	for _, c := range []*domain.Category{cooking, music, crafts} {
		if err := categories.Create(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	// ================== SKILLS ==================
	log.Println("Creating skills...")

	seedSkills := []*domain.Skill{
		{
			Title:            "Sourdough from scratch",
			Description:      "Keep a starter alive, shape loaves, and troubleshoot dense crumb.",
			ShortDescription: "Hands-on bread baking",
			CreatorID:        "creator-maya",
			CategoryID:       cooking.ID,
			Price:            45,
			Duration:         60,
			SessionType:      domain.SessionBoth,
			Location:         "Portland, OR",
			Tags:             []string{"baking", "fermentation"},
			IsActive:         true,
			IsApproved:       true,
			IsFeatured:       true,
		},
		{
			Title:       "Guitar for absolute beginners",
			Description: "First chords, strumming patterns and a song by the end of session one.",
			CreatorID:   "creator-jordan",
			CategoryID:  music.ID,
			Price:       40,
			Duration:    30,
			SessionType: domain.SessionVirtual,
			Tags:        []string{"guitar", "beginner"},
			IsActive:    true,
			IsApproved:  true,
		},
		{
			Title:       "Intro to wheel throwing",
			Description: "Center clay, pull walls, and trim your first bowl.",
			CreatorID:   "creator-maya",
			CategoryID:  crafts.ID,
			Price:       55,
			Duration:    90,
			SessionType: domain.SessionInPerson,
			Location:    "Portland, OR",
			IsActive:    true,
			IsApproved:  false, // waiting for moderation
		},
	}
	for _, s := range seedSkills {
		if err := skills.Create(ctx, s); err != nil {
			log.Fatal(err)
		}
	}

	// ================== AVAILABILITY ==================
	log.Println("Creating availability windows...")

	weekdays := []domain.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		{DayOfWeek: 3, StartTime: "14:00", EndTime: "18:00", IsAvailable: true},
		{DayOfWeek: 5, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}
	if _, err := windows.ReplaceForCreator(ctx, "creator-maya", weekdays); err != nil {
		log.Fatal(err)
	}

	evenings := []domain.AvailabilityWindow{
		{DayOfWeek: 2, StartTime: "18:00", EndTime: "21:00", IsAvailable: true},
		{DayOfWeek: 4, StartTime: "18:00", EndTime: "21:00", IsAvailable: true},
		{DayOfWeek: 6, StartTime: "10:00", EndTime: "16:00", IsAvailable: true},
	}
	if _, err := windows.ReplaceForCreator(ctx, "creator-jordan", evenings); err != nil {
		log.Fatal(err)
	}

	// ================== EVENTS ==================
	log.Println("Creating events...")

	if err := events.Create(ctx, &domain.Event{
		Title:        "Community skill swap",
		Description:  "Bring a skill, leave with a new one. Informal teaching circles all afternoon.",
		EventDate:    time.Now().AddDate(0, 0, 21),
		Location:     "Central Library, Portland",
		Price:        0,
		MaxAttendees: 60,
		IsActive:     true,
	}); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
}
