package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Shaurya0501/project-manager/models"
	"github.com/Shaurya0501/project-manager/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserService struct {
	UsersCollection *mongo.Collection
}

func NewUserService(usersCollection *mongo.Collection) *UserService {
	return &UserService{UsersCollection: usersCollection}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", models.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters long", models.ErrValidation)
	}

	var existing models.User
	if err := s.UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		return nil, models.ErrEmailTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:      html.EscapeString(name),
		Email:     email,
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	result, err := s.UsersCollection.InsertOne(ctx, user)
	if err != nil {
		// The unique index on email closes the race between the existence
		// check above and this insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save user: %v", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password yield
// the same error so the response does not reveal which one failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.UsersCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, models.ErrInvalidCredentials
	}

	return &user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UsersCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %v", err)
	}
	return &user, nil
}

// ListUsers returns reduced projections of all users, for member pickers.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.UsersCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve users: %v", err)
	}
	defer cursor.Close(ctx)

	users := []models.UserSummary{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}
	return users, nil
}
