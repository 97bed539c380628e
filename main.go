package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Shaurya0501/project-manager/config"
	"github.com/Shaurya0501/project-manager/handlers"
	"github.com/Shaurya0501/project-manager/logging"
	"github.com/Shaurya0501/project-manager/middleware"
	"github.com/Shaurya0501/project-manager/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createUserEmailIndex(collection *mongo.Collection) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}
	_, err := collection.Indexes().CreateOne(context.TODO(), indexModel)
	if err != nil {
		return fmt.Errorf("failed to create unique index on user email: %v", err)
	}
	return nil
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logging.Logger.Fatalf("Failed to load configuration: %v", err)
	}

	logging.InitLogger(cfg.Log.File)

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logging.Logger.Fatalf("Database connection failed: %v", err)
	}
	defer client.Disconnect(context.TODO())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("MongoDB connection error: %v", err)
	}
	logging.Logger.Info("Connected to MongoDB")

	db := client.Database(cfg.Mongo.Database)
	usersCollection := db.Collection("users")
	projectsCollection := db.Collection("projects")
	tasksCollection := db.Collection("tasks")

	if err := createUserEmailIndex(usersCollection); err != nil {
		logging.Logger.Fatalf("%v", err)
	}

	// Initialize services and handlers
	userService := services.NewUserService(usersCollection)
	projectService := services.NewProjectService(projectsCollection, tasksCollection, usersCollection)
	taskService := services.NewTaskService(tasksCollection, projectsCollection, usersCollection)

	authHandler := handlers.NewAuthHandler(userService, cfg.Auth.TokenTTL)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Project Manager API is running"}`))
	}).Methods("GET")
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	protected.HandleFunc("/users", userHandler.GetAllUsersHandler).Methods("GET")

	protected.HandleFunc("/projects", projectHandler.ListProjectsHandler).Methods("GET")
	protected.HandleFunc("/projects", projectHandler.CreateProject).Methods("POST")
	protected.HandleFunc("/projects/{id}", projectHandler.GetProjectByIDHandler).Methods("GET")
	protected.HandleFunc("/projects/{id}", projectHandler.UpdateProjectHandler).Methods("PUT")
	protected.HandleFunc("/projects/{id}", projectHandler.DeleteProjectHandler).Methods("DELETE")

	protected.HandleFunc("/tasks/project/{projectId}", taskHandler.GetTasksByProjectHandler).Methods("GET")
	protected.HandleFunc("/tasks", taskHandler.CreateTask).Methods("POST")
	protected.HandleFunc("/tasks/{id}", taskHandler.GetTaskByIDHandler).Methods("GET")
	protected.HandleFunc("/tasks/{id}", taskHandler.UpdateTaskHandler).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", taskHandler.DeleteTaskHandler).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      middleware.RequestLogger(c.Handler(r)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logging.Logger.Infof("Server running on %s", cfg.Addr())
	logging.Logger.Fatal(srv.ListenAndServe())
}
