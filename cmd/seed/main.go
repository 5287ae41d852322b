// Seeds the database from a YAML fixture file. Intended for local
// development: SEED_FILE (default ./seed.yaml) describes users, contracts
// and completed workouts, and everything runs through the real services so
// seeded rows match what the API would have produced.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pactfit/pactfit-backend/internal/app"
	"github.com/pactfit/pactfit-backend/internal/domain/contract"
	"github.com/pactfit/pactfit-backend/internal/requestdata"
	"github.com/pactfit/pactfit-backend/internal/services"
	"github.com/pactfit/pactfit-backend/internal/utils"
)

type seedFile struct {
	Users     []seedUser     `yaml:"users"`
	Contracts []seedContract `yaml:"contracts"`
}

type seedUser struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	DisplayName string `yaml:"display_name"`
}

type seedContract struct {
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	CreatedBy   string       `yaml:"created_by"`
	Participant string       `yaml:"participant"`
	Accepted    bool         `yaml:"accepted"`
	Schedule    seedSchedule `yaml:"schedule"`
	Workouts    []seedToggle `yaml:"workouts"`
}

type seedSchedule struct {
	Type        string   `yaml:"type"`
	Days        []string `yaml:"days"`
	DaysPerWeek int      `yaml:"days_per_week"`
}

type seedToggle struct {
	User  string   `yaml:"user"`
	Dates []string `yaml:"dates"`
}

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()
	log := a.Log.With("cmd", "seed")

	path := utils.GetEnv("SEED_FILE", "./seed.yaml", log)
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read seed file", "path", path, "error", err)
		os.Exit(1)
	}
	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		log.Error("Failed to parse seed file", "path", path, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Users first; contract creation and toggles act as them.
	asUser := make(map[string]context.Context, len(sf.Users))
	for _, su := range sf.Users {
		email := strings.ToLower(strings.TrimSpace(su.Email))
		u, err := a.Services.Auth.RegisterUser(ctx, email, su.Password, su.DisplayName)
		if err != nil {
			// Re-running the seeder against an existing database is fine.
			existing, lookupErr := a.Repos.User.GetByEmails(ctx, nil, []string{email})
			if lookupErr != nil || len(existing) == 0 {
				log.Error("Failed to seed user", "email", email, "error", err)
				os.Exit(1)
			}
			u = existing[0]
			log.Info("User already exists, reusing", "email", email)
		}
		asUser[email] = requestdata.WithRequestData(ctx, &requestdata.RequestData{UserID: u.ID})
	}

	for _, sc := range sf.Contracts {
		creatorCtx, ok := asUser[strings.ToLower(sc.CreatedBy)]
		if !ok {
			log.Error("Contract references unknown creator", "title", sc.Title, "created_by", sc.CreatedBy)
			os.Exit(1)
		}
		c, err := a.Services.Contract.CreateContract(creatorCtx, buildContractInput(sc))
		if err != nil {
			log.Error("Failed to seed contract", "title", sc.Title, "error", err)
			os.Exit(1)
		}
		if sc.Accepted {
			participantCtx, ok := asUser[strings.ToLower(sc.Participant)]
			if !ok {
				log.Error("Accepted contract needs a seeded participant", "title", sc.Title, "participant", sc.Participant)
				os.Exit(1)
			}
			if _, err := a.Services.Contract.AcceptContract(participantCtx, c.ID); err != nil {
				log.Error("Failed to accept seeded contract", "title", sc.Title, "error", err)
				os.Exit(1)
			}
		}
		for _, st := range sc.Workouts {
			userCtx, ok := asUser[strings.ToLower(st.User)]
			if !ok {
				log.Error("Workout references unknown user", "title", sc.Title, "user", st.User)
				os.Exit(1)
			}
			for _, date := range st.Dates {
				if _, err := a.Services.Workout.ToggleWorkout(userCtx, c.ID, date); err != nil {
					log.Error("Failed to seed workout", "title", sc.Title, "date", date, "error", err)
					os.Exit(1)
				}
			}
		}
		log.Info("Seeded contract", "title", sc.Title, "accepted", sc.Accepted)
	}

	log.Info("Seeding complete", "users", len(sf.Users), "contracts", len(sf.Contracts))
}

func buildContractInput(sc seedContract) services.CreateContractInput {
	sched := contract.Schedule{DaysPerWeek: sc.Schedule.DaysPerWeek}
	switch strings.ToLower(sc.Schedule.Type) {
	case "specific":
		sched.Type = contract.ScheduleSpecific
		sched.Days = make(map[string]bool, len(sc.Schedule.Days))
		for _, day := range sc.Schedule.Days {
			sched.Days[strings.ToLower(day)] = true
		}
	default:
		sched.Type = contract.ScheduleFlexible
		if sched.DaysPerWeek == 0 {
			sched.DaysPerWeek = 3
		}
	}
	return services.CreateContractInput{
		Title:            sc.Title,
		Description:      sc.Description,
		ParticipantEmail: sc.Participant,
		Schedule:         sched,
	}
}
