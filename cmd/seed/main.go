package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"workoutapi/internal/config"
	"workoutapi/internal/db"
	"workoutapi/internal/logging"
	"workoutapi/internal/model"
	"workoutapi/internal/repository"
)

// SeedData is the demo account and its history. It can be fetched as JSON from
// SEED_URL; otherwise defaultSeed is used.
type SeedData struct {
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	Exercises   []SeedExercise    `json:"exercises"`
	Plans       []SeedPlan        `json:"plans"`
	Performance []SeedPerformance `json:"performance"`
}

// SeedExercise is one logged lift.
type SeedExercise struct {
	Title string          `json:"title"`
	Load  decimal.Decimal `json:"load"`
	Reps  int             `json:"reps"`
}

// SeedPlan is one weekly plan entry.
type SeedPlan struct {
	Title string `json:"title"`
	Day   string `json:"day"`
}

// SeedPerformance is one progress record, dated DaysAgo days before seeding.
type SeedPerformance struct {
	DaysAgo      int             `json:"daysAgo"`
	Weight       decimal.Decimal `json:"weight"`
	ExerciseName string          `json:"exerciseName"`
	Load         decimal.Decimal `json:"load"`
	Reps         int             `json:"reps"`
}

type seedRepos struct {
	users       repository.UserRepository
	exercises   repository.ExerciseRepository
	plans       repository.WorkoutPlanRepository
	performance repository.PerformanceRepository
}

func defaultSeed() SeedData {
	return SeedData{
		Username: "demo",
		Email:    "demo@example.com",
		Password: "demo-password",
		Exercises: []SeedExercise{
			{Title: "Back Squat", Load: decimal.NewFromInt(100), Reps: 5},
			{Title: "Bench Press", Load: decimal.RequireFromString("72.5"), Reps: 8},
			{Title: "Deadlift", Load: decimal.NewFromInt(140), Reps: 3},
		},
		Plans: []SeedPlan{
			{Title: "Legs", Day: "Monday"},
			{Title: "Push", Day: "Wednesday"},
			{Title: "Pull", Day: "Friday"},
		},
		Performance: []SeedPerformance{
			{DaysAgo: 14, Weight: decimal.NewFromInt(82), ExerciseName: "Bench Press", Load: decimal.NewFromInt(70), Reps: 8},
			{DaysAgo: 7, Weight: decimal.RequireFromString("81.5"), ExerciseName: "Bench Press", Load: decimal.RequireFromString("72.5"), Reps: 8},
		},
	}
}

func main() {
	logger := logging.New("info")
	logger.Info().Msg("starting seed script")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	data := defaultSeed()
	if url := os.Getenv("SEED_URL"); url != "" {
		logger.Info().Str("url", url).Msg("fetching seed data")
		if data, err = fetchSeedData(url); err != nil {
			logger.Fatal().Err(err).Msg("failed to fetch seed data")
		}
	}

	repos := seedRepos{
		users:       repository.NewUserRepository(gormDB),
		exercises:   repository.NewExerciseRepository(gormDB),
		plans:       repository.NewWorkoutPlanRepository(gormDB),
		performance: repository.NewPerformanceRepository(gormDB),
	}

	user, created, err := seedDemo(context.Background(), repos, data, time.Now(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed demo data")
	}

	logger.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Bool("created", created).
		Msg("seed completed")
}

// fetchSeedData fetches seed data from an HTTP endpoint.
func fetchSeedData(url string) (SeedData, error) {
	var data SeedData

	resp, err := http.Get(url)
	if err != nil {
		return data, fmt.Errorf("failed to fetch seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return data, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return data, fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, &data); err != nil {
		return data, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if data.Email == "" || data.Username == "" || data.Password == "" {
		return data, fmt.Errorf("seed data needs username, email and password")
	}
	return data, nil
}

// seedDemo creates the verified demo account with its history. An existing
// account with the same email is left untouched and reported as not created.
func seedDemo(ctx context.Context, repos seedRepos, data SeedData, now time.Time, logger zerolog.Logger) (*model.User, bool, error) {
	existing, err := repos.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, false, fmt.Errorf("error checking account %s: %w", data.Email, err)
	}
	if existing != nil {
		logger.Info().Str("email", data.Email).Msg("demo account already exists, skipping")
		return existing, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:        data.Username,
		Email:           data.Email,
		PasswordHash:    string(hash),
		IsEmailVerified: true,
	}
	if err := repos.users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("error creating account %s: %w", data.Email, err)
	}

	for _, item := range data.Exercises {
		exercise := &model.Exercise{Title: item.Title, Load: item.Load, Reps: item.Reps, UserID: user.ID}
		if err := repos.exercises.Create(ctx, exercise); err != nil {
			return nil, false, fmt.Errorf("error creating exercise %q: %w", item.Title, err)
		}
	}

	for _, item := range data.Plans {
		plan := &model.WorkoutPlan{UserID: &user.ID, Title: item.Title, Day: item.Day}
		if err := repos.plans.Create(ctx, plan); err != nil {
			return nil, false, fmt.Errorf("error creating plan %q: %w", item.Title, err)
		}
	}

	for _, item := range data.Performance {
		record := &model.Performance{
			UserID:       user.ID,
			Date:         now.AddDate(0, 0, -item.DaysAgo).UnixMilli(),
			Weight:       item.Weight,
			ExerciseName: item.ExerciseName,
			Load:         item.Load,
			Reps:         item.Reps,
		}
		if err := repos.performance.Create(ctx, record); err != nil {
			return nil, false, fmt.Errorf("error creating performance record: %w", err)
		}
	}

	logger.Info().
		Int("exercises", len(data.Exercises)).
		Int("plans", len(data.Plans)).
		Int("performance", len(data.Performance)).
		Msg("demo history created")
	return user, true, nil
}
