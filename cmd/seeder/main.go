package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-tournament/internal/database"
	"github.com/mauv0809/padel-tournament/internal/padel"
	"github.com/mauv0809/padel-tournament/internal/schedule"
	"github.com/mauv0809/padel-tournament/internal/store"
)

const (
	teamsPerCategory  = 8
	groupsPerCategory = 2
)

var categories = []string{"5ta Masculino", "5ta Femenino"}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"DB_NAME": "padel.db"}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	st := store.New(db)
	startTime := time.Now()
	for _, name := range categories {
		if err := seedCategory(st, name); err != nil {
			log.Fatalf("Failed to seed %s: %s", name, err)
		}
	}
	log.Info("Successfully seeded the database.", "duration", time.Since(startTime))
}

func seedCategory(st store.Store, name string) error {
	category := &padel.Category{ID: slug.Make(name), Name: name}
	switch err := st.CreateCategory(category); {
	case errors.Is(err, padel.ErrConflict):
		log.Warn("Category already exists, skipping", "category", category.ID)
		return nil
	case err != nil:
		return err
	}

	teams := make([]padel.Team, 0, teamsPerCategory)
	for i := range teamsPerCategory {
		t := &padel.Team{
			Name:     fmt.Sprintf("Seeded Team %d", i+1),
			Player1:  fmt.Sprintf("Seeder Player %d", 2*i+1),
			Player2:  fmt.Sprintf("Seeder Player %d", 2*i+2),
			Category: category.ID,
		}
		if err := st.CreateTeam(t); err != nil {
			return fmt.Errorf("failed to insert team %s: %w", t.Name, err)
		}
		teams = append(teams, *t)
	}

	draw, err := schedule.DrawGroups(category.ID, teams, groupsPerCategory, nil)
	if err != nil {
		return err
	}
	for _, g := range draw {
		if err := st.CreateGroup(&g.Group); err != nil {
			return fmt.Errorf("failed to insert group %s: %w", g.Name, err)
		}
		for _, t := range g.Teams {
			if err := st.AddTeamToGroup(g.ID, t.ID); err != nil {
				return fmt.Errorf("failed to add %s to %s: %w", t.Name, g.Name, err)
			}
		}
	}
	log.Info("Seeded category", "category", category.ID, "teams", len(teams), "groups", len(draw))
	return nil
}
