package main

import (
	"fmt"

	"nightingale/config"
	"nightingale/internal/domain/entity"
	"nightingale/internal/infrastructure/database"
	"nightingale/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	username string
	password string
	email    string
	bio      string
	resume   string
}

var users = []seedUser{
	{"john_doe", "password123", "john@example.com", "Experienced RN with 10 years in critical care", "https://example.com/resume1.pdf"},
	{"jane_smith", "password456", "jane@example.com", "Travel nurse specializing in pediatrics", "https://example.com/resume2.pdf"},
	{"mike_wilson", "password789", "mike@example.com", "ER nurse seeking new opportunities", ""},
}

var hospitals = []entity.Hospital{
	{Name: "City General Hospital", Street: "123 Main Street", City: "New York", State: "NY"},
	{Name: "St. Mary's Medical Center", Street: "456 Oak Avenue", City: "Los Angeles", State: "CA"},
	{Name: "County Memorial Hospital", Street: "789 Elm Boulevard", City: "Chicago", State: "IL"},
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(cfg.DB, cfg.App.Env)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	if err := db.Transaction(seed); err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}
	logrus.Info("Database seeded")
}

func seed(tx *gorm.DB) error {
	userRepo := repository.NewUserRepository()
	hospitalRepo := repository.NewHospitalRepository()
	postRepo := repository.NewPostRepository()
	reviewRepo := repository.NewReviewRepository()
	ratingRepo := repository.NewRatingRepository()
	reactionRepo := repository.NewReactionRepository()

	userIDs := make([]uuid.UUID, len(users))
	for i, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		user := &entity.User{
			Username: u.username,
			Email:    u.email,
			Password: string(hash),
			Bio:      u.bio,
			Resume:   u.resume,
		}
		if err := userRepo.Create(tx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.username, err)
		}
		userIDs[i] = user.ID
	}
	logrus.Infof("Created %d users", len(userIDs))

	hospitalIDs := make([]uuid.UUID, len(hospitals))
	for i := range hospitals {
		hospital := hospitals[i]
		if err := hospitalRepo.Create(tx, &hospital); err != nil {
			return fmt.Errorf("create hospital %s: %w", hospital.Name, err)
		}
		hospitalIDs[i] = hospital.ID
	}
	logrus.Infof("Created %d hospitals", len(hospitalIDs))

	posts := []struct {
		author int
		body   string
	}{
		{0, "Just finished my first week at City General! The team is amazing and the culture is so supportive. #nurselife"},
		{1, "Looking for travel nursing opportunities in California. Any recommendations?"},
		{2, "Does anyone have experience with the ER department at St. Mary's? Considering applying there."},
		{0, "Pro tip: Always double check your medication dosages before administering. Patient safety first!"},
	}
	postIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		post := &entity.Post{UserID: userIDs[p.author], Body: p.body}
		if err := postRepo.Create(tx, post); err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		postIDs[i] = post.ID
	}
	logrus.Infof("Created %d posts", len(postIDs))

	reviews := []struct {
		author, hospital int
		body             string
	}{
		{0, 0, "City General is an excellent place to work. Management is supportive and they provide great continuing education opportunities. The nurse-to-patient ratio is reasonable and the facility is well-maintained."},
		{1, 1, "St. Mary's has a great pediatric unit. The staff is friendly and collaborative. However, parking can be a challenge during peak hours."},
		{2, 0, "Worked here for 3 years. Good benefits and pay is competitive. The night shift differential is generous."},
	}
	for _, r := range reviews {
		review := &entity.Review{UserID: userIDs[r.author], HospitalID: hospitalIDs[r.hospital], Body: r.body}
		if err := reviewRepo.Create(tx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
	}

	ratings := []struct {
		author, hospital, value int
	}{
		{0, 0, 5}, {1, 1, 4}, {2, 0, 4}, {0, 1, 3}, {1, 2, 4},
	}
	for _, r := range ratings {
		rating := &entity.Rating{UserID: userIDs[r.author], HospitalID: hospitalIDs[r.hospital], RatingValue: r.value}
		if err := ratingRepo.Create(tx, rating); err != nil {
			return fmt.Errorf("create rating: %w", err)
		}
	}

	reactions := []struct {
		user, post int
		kind       entity.ReactionKind
	}{
		{1, 0, entity.ReactionLike},
		{2, 0, entity.ReactionLike},
		{0, 1, entity.ReactionLike},
		{2, 3, entity.ReactionLike},
		{1, 2, entity.ReactionDislike},
	}
	for _, r := range reactions {
		reaction := &entity.Reaction{UserID: userIDs[r.user], PostID: postIDs[r.post], Kind: r.kind}
		if err := reactionRepo.Create(tx, reaction); err != nil {
			return fmt.Errorf("create reaction: %w", err)
		}
	}
	logrus.Infof("Created %d reviews, %d ratings and %d reactions", len(reviews), len(ratings), len(reactions))

	return nil
}
