// Command seed populates a fresh database with the University of Rwanda
// college hierarchy, the current academic year and a default admin account.
// It is idempotent: existing rows are left alone.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"courseportal/internal/config"
	"courseportal/internal/database"
	"courseportal/internal/domain"
	"courseportal/internal/pkg/logger"
	"courseportal/internal/repository"
)

type collegeSeed struct {
	code    string
	name    string
	schools []schoolSeed
}

type schoolSeed struct {
	code string
	name string
}

var colleges = []collegeSeed{
	{
		code: "CST",
		name: "College of Science and Technology",
		schools: []schoolSeed{
			{"SOICT", "School of ICT"},
			{"SOE", "School of Engineering"},
			{"SOS", "School of Science"},
		},
	},
	{
		code: "CBE",
		name: "College of Business and Economics",
		schools: []schoolSeed{
			{"SOB", "School of Business"},
			{"SOEC", "School of Economics"},
		},
	},
	{
		code: "CMHS",
		name: "College of Medicine and Health Sciences",
		schools: []schoolSeed{
			{"SOM", "School of Medicine"},
			{"SONM", "School of Nursing and Midwifery"},
		},
	},
	{
		code: "CASS",
		name: "College of Arts and Social Sciences",
		schools: []schoolSeed{
			{"SOSS", "School of Social Sciences"},
			{"SOL", "School of Law"},
		},
	},
	{
		code: "CAVM",
		name: "College of Agriculture, Animal Sciences and Veterinary Medicine",
		schools: []schoolSeed{
			{"SOAG", "School of Agriculture"},
			{"SOVM", "School of Veterinary Medicine"},
		},
	},
	{
		code: "CE",
		name: "College of Education",
		schools: []schoolSeed{
			{"SOED", "School of Education"},
		},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("database migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	if err := seedCatalog(ctx, db, log); err != nil {
		log.Error("catalog seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := seedAcademicYear(ctx, db, log); err != nil {
		log.Error("academic year seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := seedAdmin(ctx, db, log); err != nil {
		log.Error("admin seed failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("seed complete")
}

func seedCatalog(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	collegeRepo := repository.NewCollegeRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)

	for _, seed := range colleges {
		college, err := collegeRepo.GetByCode(ctx, seed.code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			college = &domain.College{Code: seed.code, Name: seed.name, IsActive: true}
			if err := collegeRepo.Create(ctx, college); err != nil {
				return err
			}
			log.Info("created college", slog.String("code", seed.code))
		} else if err != nil {
			return err
		}

		for _, sc := range seed.schools {
			var existing domain.School
			err := db.WithContext(ctx).Where("code = ?", sc.code).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				school := &domain.School{
					CollegeID: college.ID,
					Code:      sc.code,
					Name:      sc.name,
					IsActive:  true,
				}
				if err := schoolRepo.Create(ctx, school); err != nil {
					return err
				}
				log.Info("created school", slog.String("code", sc.code))
			} else if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedAcademicYear(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	yearRepo := repository.NewAcademicYearRepository(db)

	now := time.Now()
	startYear := now.Year()
	if now.Month() < time.September {
		startYear--
	}
	code := fmt.Sprintf("%d-%d", startYear, startYear+1)

	var existing domain.AcademicYear
	err := db.WithContext(ctx).Where("year_code = ?", code).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	start := time.Date(startYear, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(startYear+1, time.July, 31, 0, 0, 0, 0, time.UTC)
	year := &domain.AcademicYear{
		YearCode:  code,
		Name:      "Academic Year " + code,
		StartDate: start,
		EndDate:   end,
	}
	if err := yearRepo.Create(ctx, year); err != nil {
		return err
	}
	if err := yearRepo.Activate(ctx, year.ID); err != nil {
		return err
	}

	sem1 := &domain.Semester{
		AcademicYearID: year.ID,
		Name:           "Semester 1",
		Code:           "S1",
		StartDate:      start,
		EndDate:        time.Date(startYear+1, time.January, 31, 0, 0, 0, 0, time.UTC),
	}
	sem2 := &domain.Semester{
		AcademicYearID: year.ID,
		Name:           "Semester 2",
		Code:           "S2",
		StartDate:      time.Date(startYear+1, time.February, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        end,
	}
	if err := yearRepo.CreateSemester(ctx, sem1); err != nil {
		return err
	}
	if err := yearRepo.CreateSemester(ctx, sem2); err != nil {
		return err
	}

	log.Info("created academic year", slog.String("code", code))
	return nil
}

func seedAdmin(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	userRepo := repository.NewUserRepository(db)
	if exists, err := userRepo.ExistsByEmail(ctx, email); err != nil {
		return err
	} else if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	adminUser := &domain.User{
		Email:        email,
		Name:         "System Administrator",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, adminUser); err != nil {
		return err
	}
	log.Info("created admin account", slog.String("email", email))
	return nil
}
