package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v6"

	"portfolio/internal/config"
	"portfolio/internal/db"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/logger"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

// seedPassword is shared by every generated account so they can sign in.
const seedPassword = "portfolio-demo"

func main() {
	users := flag.Int("users", 10, "number of users to create")
	projects := flag.Int("projects", 3, "projects per user")
	comments := flag.Int("comments", 2, "comments per project")
	seed := flag.Int64("seed", 0, "random seed (0 picks one)")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.LogLevel)

	if err := run(context.Background(), cfg, log, *users, *projects, *comments, *seed); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, userCount, projectsPerUser, commentsPerProject int, seed int64) error {
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	s := seeder{
		faker:    gofakeit.New(seed),
		users:    service.NewUserService(userRepo),
		projects: service.NewProjectService(projectRepo, userRepo),
		comments: service.NewCommentService(commentRepo, projectRepo, userRepo),
		log:      log,
	}
	return s.run(ctx, userCount, projectsPerUser, commentsPerProject)
}

type seeder struct {
	faker    *gofakeit.Faker
	users    service.UserService
	projects service.ProjectService
	comments service.CommentService
	log      *slog.Logger
}

func (s seeder) run(ctx context.Context, userCount, projectsPerUser, commentsPerProject int) error {
	var userIDs, projectIDs []uint

	for len(userIDs) < userCount {
		first, last := s.faker.FirstName(), s.faker.LastName()
		user, err := s.users.CreateUser(ctx, service.NewUser{
			Username:  s.faker.Username(),
			Email:     s.faker.Email(),
			Password:  seedPassword,
			FirstName: first,
			LastName:  last,
			Bio:       s.faker.Sentence(12),
			GitHub:    s.faker.Username(),
		})
		if errors.Is(err, apperrors.ErrUsernameTaken) || errors.Is(err, apperrors.ErrEmailTaken) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		userIDs = append(userIDs, user.ID)

		for i := 0; i < projectsPerUser; i++ {
			project, err := s.projects.CreateProject(ctx, service.NewProject{
				Title:       s.faker.AppName(),
				Description: s.faker.Paragraph(1, 3, 12, " "),
				ImageURL:    s.faker.ImageURL(640, 480),
				URL:         s.faker.URL(),
				UserID:      user.ID,
			})
			if err != nil {
				return fmt.Errorf("create project: %w", err)
			}
			projectIDs = append(projectIDs, project.ID)
		}
	}

	created := 0
	for _, projectID := range projectIDs {
		for i := 0; i < commentsPerProject; i++ {
			author := userIDs[s.faker.Number(0, len(userIDs)-1)]
			if _, err := s.comments.CreateComment(ctx, service.NewComment{
				Content:   s.faker.HackerPhrase(),
				UserID:    author,
				ProjectID: projectID,
			}); err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			created++
		}
	}

	s.log.Info("seed complete",
		"users", len(userIDs),
		"projects", len(projectIDs),
		"comments", created,
		"password", seedPassword,
	)
	return nil
}
