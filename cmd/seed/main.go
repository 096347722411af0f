package main

import (
	"fmt"
	"time"

	"meetapp/pkg/config"
	"meetapp/pkg/database"
	"meetapp/pkg/logger"
	"meetapp/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	users := []struct {
		name     string
		email    string
		password string
	}{
		{"Ada Lovelace", "ada@meetapp.com", "123456"},
		{"Grace Hopper", "grace@meetapp.com", "123456"},
		{"Alan Turing", "alan@meetapp.com", "123456"},
	}

	var created []models.User
	for _, u := range users {
		var existing models.User
		if err := db.Where("email = ?", u.email).First(&existing).Error; err == nil {
			log.Info("User %s already exists, skipping", u.email)
			created = append(created, existing)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := models.User{
			Name:     u.name,
			Email:    u.email,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.email, err)
		}
		log.Info("Created user %s (%s)", user.Name, user.ID)
		created = append(created, user)
	}

	if len(created) == 0 {
		return nil
	}

	meetups := []struct {
		title       string
		description string
		location    string
		daysAhead   int
		organizer   int
	}{
		{"Go Meetup", "Talks about Go in production", "Av. Paulista 1000, São Paulo", 7, 0},
		{"React Native Night", "Mobile development round table", "Rua da Consolação 500, São Paulo", 14, 1},
		{"DevOps Breakfast", "CI/CD war stories over coffee", "Av. Faria Lima 2000, São Paulo", 21, 2},
	}

	for _, m := range meetups {
		var existing models.Meetup
		if err := db.Where("title = ?", m.title).First(&existing).Error; err == nil {
			log.Info("Meetup %q already exists, skipping", m.title)
			continue
		}

		meetup := models.Meetup{
			Title:       m.title,
			Description: m.description,
			Location:    m.location,
			Date:        time.Now().AddDate(0, 0, m.daysAhead).Truncate(time.Hour),
			OrganizerID: created[m.organizer].ID,
		}
		if err := db.Create(&meetup).Error; err != nil {
			return fmt.Errorf("failed to create meetup %q: %w", m.title, err)
		}
		log.Info("Created meetup %q on %s", meetup.Title, meetup.Date.Format(time.RFC3339))
	}

	return nil
}
